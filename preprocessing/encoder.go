// Package preprocessing はカテゴリカル特徴量のエンコーディングと
// 数値特徴量のスケーリングを提供します。
//
// OrdinalEncoderはカテゴリ値を単一の整数インデックスに、OneHotEncoderは
// カテゴリごとのバイナリ列に変換します。前者はカテゴリ間に本来存在しない
// 順序関係を暗黙に導入するため、距離ベースのアルゴリズム（k-meansなど）に
// 渡す場合の影響をエンコーディングの比較デモで確認できます。
package preprocessing

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edago/core/model"
	"github.com/YuminosukeSato/edago/pkg/errors"
)

var (
	_ model.CategoricalEncoder = (*OrdinalEncoder)(nil)
	_ model.CategoricalEncoder = (*OneHotEncoder)(nil)
)

// sortedUnique は出現カテゴリを昇順・重複なしで返す
func sortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		categories = append(categories, v)
	}
	sort.Strings(categories)
	return categories
}

// OrdinalEncoder はカテゴリ値を整数インデックスにエンコードする。
// インデックスはカテゴリの昇順（辞書順）で割り当てられる。
type OrdinalEncoder struct {
	model.BaseEstimator

	// categories は学習されたカテゴリ（昇順）
	categories []string

	// index はカテゴリ値からインデックスへの逆引き
	index map[string]int
}

// NewOrdinalEncoder は新しいOrdinalEncoderを作成する
func NewOrdinalEncoder() *OrdinalEncoder {
	return &OrdinalEncoder{}
}

// Fit は入力値から出現カテゴリの集合を学習する
func (e *OrdinalEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "OrdinalEncoder.Fit")
	}
	return e.FitCategories(sortedUnique(values))
}

// FitCategories は既知のカテゴリ集合を明示的に設定する。
// カテゴリは昇順に並べ替えられる。
func (e *OrdinalEncoder) FitCategories(categories []string) error {
	if len(categories) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "OrdinalEncoder.FitCategories")
	}

	cats := make([]string, len(categories))
	copy(cats, categories)
	sort.Strings(cats)

	index := make(map[string]int, len(cats))
	for i, c := range cats {
		if _, dup := index[c]; dup {
			return errors.NewValueError("OrdinalEncoder.FitCategories", fmt.Sprintf("duplicate category %q", c))
		}
		index[c] = i
	}

	e.categories = cats
	e.index = index
	e.SetFitted()
	return nil
}

// Transform はカテゴリ値をn×1のインデックス行列に変換する。
// 学習時に存在しなかったカテゴリはエラーになる。
func (e *OrdinalEncoder) Transform(values []string) (mat.Matrix, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OrdinalEncoder", "Transform")
	}

	result := mat.NewDense(len(values), 1, nil)
	for i, v := range values {
		idx, ok := e.index[v]
		if !ok {
			return nil, errors.NewValueError("OrdinalEncoder.Transform", fmt.Sprintf("unknown category %q", v))
		}
		result.Set(i, 0, float64(idx))
	}
	return result, nil
}

// FitTransform は学習と変換を同時に行う
func (e *OrdinalEncoder) FitTransform(values []string) (mat.Matrix, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}

// InverseTransform はインデックス行列を元のカテゴリ値に戻す
func (e *OrdinalEncoder) InverseTransform(X mat.Matrix) ([]string, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OrdinalEncoder", "InverseTransform")
	}

	r, c := X.Dims()
	if c != 1 {
		return nil, errors.NewDimensionError("OrdinalEncoder.InverseTransform", 1, c, 1)
	}

	values := make([]string, r)
	for i := 0; i < r; i++ {
		v := X.At(i, 0)
		idx := int(v)
		if float64(idx) != v || idx < 0 || idx >= len(e.categories) {
			return nil, errors.NewValueError("OrdinalEncoder.InverseTransform", fmt.Sprintf("value %v is not a valid category index", v))
		}
		values[i] = e.categories[idx]
	}
	return values, nil
}

// Categories は学習されたカテゴリを昇順で返す
func (e *OrdinalEncoder) Categories() []string {
	categories := make([]string, len(e.categories))
	copy(categories, e.categories)
	return categories
}

// GetParams はエンコーダのパラメータを取得する
func (e *OrdinalEncoder) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"categories": e.Categories(),
	}
}

// String はエンコーダの文字列表現を返す
func (e *OrdinalEncoder) String() string {
	if !e.IsFitted() {
		return "OrdinalEncoder()"
	}
	return fmt.Sprintf("OrdinalEncoder(categories=[%s])", strings.Join(e.categories, ", "))
}

// OneHotEncoder はカテゴリ値をカテゴリごとのバイナリ列にエンコードする。
// 変換結果はn×k行列（kは学習されたカテゴリ数）で、各行はちょうど1つの
// 「1」を持ち、その位置が元のカテゴリを表す。
type OneHotEncoder struct {
	model.BaseEstimator

	// categories は学習されたカテゴリ（昇順）。出力列の順序に対応する。
	categories []string

	// index はカテゴリ値から出力列への逆引き
	index map[string]int
}

// NewOneHotEncoder は新しいOneHotEncoderを作成する
//
// 使用例:
//
//	enc := preprocessing.NewOneHotEncoder()
//	err := enc.Fit([]string{"red", "blue", "green", "red"})
//	X, err := enc.Transform([]string{"red", "blue"})
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// Fit は入力値から出現カテゴリの集合を学習する
func (e *OneHotEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "OneHotEncoder.Fit")
	}
	return e.FitCategories(sortedUnique(values))
}

// FitCategories は既知のカテゴリ集合を明示的に設定する。
// カテゴリは昇順に並べ替えられ、出力列の順序になる。
func (e *OneHotEncoder) FitCategories(categories []string) error {
	if len(categories) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "OneHotEncoder.FitCategories")
	}

	cats := make([]string, len(categories))
	copy(cats, categories)
	sort.Strings(cats)

	index := make(map[string]int, len(cats))
	for i, c := range cats {
		if _, dup := index[c]; dup {
			return errors.NewValueError("OneHotEncoder.FitCategories", fmt.Sprintf("duplicate category %q", c))
		}
		index[c] = i
	}

	e.categories = cats
	e.index = index
	e.SetFitted()
	return nil
}

// Transform はカテゴリ値をn×kのバイナリ行列に変換する。
// 学習時に存在しなかったカテゴリはエラーになる。
func (e *OneHotEncoder) Transform(values []string) (mat.Matrix, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}

	result := mat.NewDense(len(values), len(e.categories), nil)
	for i, v := range values {
		idx, ok := e.index[v]
		if !ok {
			return nil, errors.NewValueError("OneHotEncoder.Transform", fmt.Sprintf("unknown category %q", v))
		}
		result.Set(i, idx, 1)
	}
	return result, nil
}

// FitTransform は学習と変換を同時に行う
func (e *OneHotEncoder) FitTransform(values []string) (mat.Matrix, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}

// InverseTransform はバイナリ行列の各行の「1」の位置から元のカテゴリ値を
// 復元する。各行はちょうど1つの「1」を持たなければならない。
func (e *OneHotEncoder) InverseTransform(X mat.Matrix) ([]string, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "InverseTransform")
	}

	r, c := X.Dims()
	if c != len(e.categories) {
		return nil, errors.NewDimensionError("OneHotEncoder.InverseTransform", len(e.categories), c, 1)
	}

	values := make([]string, r)
	for i := 0; i < r; i++ {
		hot := -1
		for j := 0; j < c; j++ {
			switch X.At(i, j) {
			case 0:
				// ok
			case 1:
				if hot >= 0 {
					return nil, errors.NewValueError("OneHotEncoder.InverseTransform", fmt.Sprintf("row %d has more than one hot column", i))
				}
				hot = j
			default:
				return nil, errors.NewValueError("OneHotEncoder.InverseTransform", fmt.Sprintf("row %d contains a value other than 0 or 1", i))
			}
		}
		if hot < 0 {
			return nil, errors.NewValueError("OneHotEncoder.InverseTransform", fmt.Sprintf("row %d has no hot column", i))
		}
		values[i] = e.categories[hot]
	}
	return values, nil
}

// Categories は学習されたカテゴリを昇順で返す
func (e *OneHotEncoder) Categories() []string {
	categories := make([]string, len(e.categories))
	copy(categories, e.categories)
	return categories
}

// GetParams はエンコーダのパラメータを取得する
func (e *OneHotEncoder) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"categories": e.Categories(),
	}
}

// String はエンコーダの文字列表現を返す
func (e *OneHotEncoder) String() string {
	if !e.IsFitted() {
		return "OneHotEncoder()"
	}
	return fmt.Sprintf("OneHotEncoder(categories=[%s])", strings.Join(e.categories, ", "))
}
