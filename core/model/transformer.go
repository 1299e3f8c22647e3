package model

import "gonum.org/v1/gonum/mat"

// Transformer は数値データ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// CategoricalEncoder はカテゴリカル列をエンコードするインターフェース。
// OrdinalEncoderとOneHotEncoderが実装する。
type CategoricalEncoder interface {
	// Fit は入力値から出現カテゴリの集合を学習する
	Fit(values []string) error

	// Transform はカテゴリ値を数値表現の行列に変換する
	Transform(values []string) (mat.Matrix, error)

	// Categories は学習されたカテゴリを昇順で返す
	Categories() []string
}

// Clusterer は教師なしクラスタリングのインターフェース
type Clusterer interface {
	// Fit はデータからクラスタ構造を学習する
	Fit(X mat.Matrix) error

	// Predict は各サンプルのクラスタラベルを返す
	Predict(X mat.Matrix) ([]int, error)
}
