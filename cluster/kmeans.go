// Package cluster はk-meansクラスタリングを提供します。
// エンコーディング比較デモの「同じクラスタリングアルゴリズムに異なる
// エンコーディングを与えるとどうなるか」を支える実装です。
package cluster

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edago/core/model"
	"github.com/YuminosukeSato/edago/core/parallel"
	"github.com/YuminosukeSato/edago/pkg/errors"
)

// KMeans はフルバッチのk-meansクラスタリング（Lloyd法）
type KMeans struct {
	model.BaseEstimator

	// ハイパーパラメータ
	nClusters   int     // クラスタ数
	init        string  // 初期化方法: "k-means++", "random"
	maxIter     int     // 最大イテレーション数
	tol         float64 // 収束判定: 中心の移動量の合計がこれを下回ったら停止
	nInit       int     // 異なる初期化での実行回数
	randomState int64   // 乱数シード（負なら時刻ベース）

	// 学習パラメータ
	clusterCenters_ [][]float64
	labels_         []int
	inertia_        float64
	nIter_          int

	// 内部状態
	mu         sync.RWMutex
	rng        *rand.Rand
	nFeatures_ int
}

var _ model.Clusterer = (*KMeans)(nil)

// Option はKMeansの設定オプション
type Option func(*KMeans)

// WithNClusters はクラスタ数を設定
func WithNClusters(n int) Option {
	return func(km *KMeans) {
		km.nClusters = n
	}
}

// WithInit は初期化方法を設定（"k-means++" または "random"）
func WithInit(init string) Option {
	return func(km *KMeans) {
		km.init = init
	}
}

// WithMaxIter は最大イテレーション数を設定
func WithMaxIter(maxIter int) Option {
	return func(km *KMeans) {
		km.maxIter = maxIter
	}
}

// WithTol は収束判定の許容誤差を設定
func WithTol(tol float64) Option {
	return func(km *KMeans) {
		km.tol = tol
	}
}

// WithNInit は異なる初期化での実行回数を設定
func WithNInit(n int) Option {
	return func(km *KMeans) {
		km.nInit = n
	}
}

// WithRandomState は乱数シードを設定
func WithRandomState(seed int64) Option {
	return func(km *KMeans) {
		km.randomState = seed
	}
}

// NewKMeans は新しいKMeansを作成する
func NewKMeans(options ...Option) *KMeans {
	km := &KMeans{
		nClusters:   8,
		init:        "k-means++",
		maxIter:     300,
		tol:         1e-4,
		nInit:       10,
		randomState: -1,
	}

	for _, opt := range options {
		opt(km)
	}

	if km.randomState >= 0 {
		km.rng = rand.New(rand.NewSource(km.randomState))
	} else {
		km.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return km
}

// Fit はデータからクラスタ中心を学習する。
// nInit回の独立した実行のうち慣性が最小のものを採用する。
func (km *KMeans) Fit(X mat.Matrix) error {
	km.mu.Lock()
	defer km.mu.Unlock()

	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "KMeans.Fit")
	}
	if rows < km.nClusters {
		return errors.NewValueError("KMeans.Fit", fmt.Sprintf("n_samples=%d should be >= n_clusters=%d", rows, km.nClusters))
	}

	km.nFeatures_ = cols

	bestInertia := math.Inf(1)
	var bestCenters [][]float64
	var bestLabels []int
	var bestNIter int

	for run := 0; run < km.nInit; run++ {
		centers, labels, inertia, nIter := km.lloyd(X)
		if inertia < bestInertia {
			bestInertia = inertia
			bestCenters = centers
			bestLabels = labels
			bestNIter = nIter
		}
	}

	km.clusterCenters_ = bestCenters
	km.labels_ = bestLabels
	km.inertia_ = bestInertia
	km.nIter_ = bestNIter

	km.SetFitted()
	return nil
}

// lloyd は1回分のLloyd反復を実行する
func (km *KMeans) lloyd(X mat.Matrix) ([][]float64, []int, float64, int) {
	rows, cols := X.Dims()

	centers := km.initializeCenters(X)
	labels := make([]int, rows)
	converged := false
	var iter int

	for iter = 0; iter < km.maxIter; iter++ {
		// 割り当てステップ（行ごとに独立なのでCPUコアに分配する）
		km.assign(X, centers, labels)

		// 更新ステップ: 各クラスタの所属サンプルの平均
		sums := make([][]float64, km.nClusters)
		counts := make([]int, km.nClusters)
		for c := range sums {
			sums[c] = make([]float64, cols)
		}
		for i, label := range labels {
			counts[label]++
			for j := 0; j < cols; j++ {
				sums[label][j] += X.At(i, j)
			}
		}

		shift := 0.0
		for c := 0; c < km.nClusters; c++ {
			if counts[c] == 0 {
				// 空クラスタはランダムなサンプルに再配置する
				idx := km.rng.Intn(rows)
				for j := 0; j < cols; j++ {
					sums[c][j] = X.At(idx, j)
				}
				counts[c] = 1
			}
			for j := 0; j < cols; j++ {
				newCenter := sums[c][j] / float64(counts[c])
				diff := newCenter - centers[c][j]
				shift += diff * diff
				centers[c][j] = newCenter
			}
		}

		if shift <= km.tol {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("KMeans", km.maxIter))
	}

	// 最終的な割り当てと慣性
	km.assign(X, centers, labels)
	inertia := 0.0
	for i, label := range labels {
		sample := mat.Row(nil, i, X)
		d := euclideanDistance(sample, centers[label])
		inertia += d * d
	}
	return centers, labels, inertia, iter
}

// assign は各サンプルを最近傍のクラスタ中心に割り当てる
func (km *KMeans) assign(X mat.Matrix, centers [][]float64, labels []int) {
	rows, _ := X.Dims()
	parallel.Parallelize(rows, func(start, end int) {
		var sample []float64
		for i := start; i < end; i++ {
			sample = mat.Row(sample, i, X)
			labels[i] = nearestCluster(sample, centers)
		}
	})
}

// Predict は入力データの各サンプルにクラスタラベルを割り当てる
func (km *KMeans) Predict(X mat.Matrix) ([]int, error) {
	km.mu.RLock()
	defer km.mu.RUnlock()

	if !km.IsFitted() {
		return nil, errors.NewNotFittedError("KMeans", "Predict")
	}

	rows, cols := X.Dims()
	if cols != km.nFeatures_ {
		return nil, errors.NewDimensionError("KMeans.Predict", km.nFeatures_, cols, 1)
	}

	labels := make([]int, rows)
	km.assign(X, km.clusterCenters_, labels)
	return labels, nil
}

// FitPredict は学習と学習データへのラベル割り当てを同時に行う
func (km *KMeans) FitPredict(X mat.Matrix) ([]int, error) {
	if err := km.Fit(X); err != nil {
		return nil, err
	}
	return km.Labels(), nil
}

// ClusterCenters は学習されたクラスタ中心を返す
func (km *KMeans) ClusterCenters() [][]float64 {
	km.mu.RLock()
	defer km.mu.RUnlock()

	centers := make([][]float64, len(km.clusterCenters_))
	for i := range km.clusterCenters_ {
		centers[i] = make([]float64, len(km.clusterCenters_[i]))
		copy(centers[i], km.clusterCenters_[i])
	}
	return centers
}

// Labels は学習データのクラスタラベルを返す
func (km *KMeans) Labels() []int {
	km.mu.RLock()
	defer km.mu.RUnlock()

	if km.labels_ == nil {
		return nil
	}
	labels := make([]int, len(km.labels_))
	copy(labels, km.labels_)
	return labels
}

// Inertia は慣性（クラスタ内平方和誤差）を返す
func (km *KMeans) Inertia() float64 {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.inertia_
}

// NIterations は採用された実行のイテレーション数を返す
func (km *KMeans) NIterations() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.nIter_
}

// String はモデルの文字列表現を返す
func (km *KMeans) String() string {
	return fmt.Sprintf("KMeans(n_clusters=%d, init=%q, max_iter=%d)", km.nClusters, km.init, km.maxIter)
}

// 内部ヘルパーメソッド

// initializeCenters はクラスタ中心を初期化する
func (km *KMeans) initializeCenters(X mat.Matrix) [][]float64 {
	rows, cols := X.Dims()

	if km.init == "random" {
		centers := make([][]float64, km.nClusters)
		for i := range centers {
			centers[i] = make([]float64, cols)
			sample := mat.Row(nil, km.rng.Intn(rows), X)
			copy(centers[i], sample)
		}
		return centers
	}

	// デフォルトはk-means++
	return km.initKMeansPlusPlus(X)
}

// initKMeansPlusPlus はk-means++初期化を実行する
func (km *KMeans) initKMeansPlusPlus(X mat.Matrix) [][]float64 {
	rows, cols := X.Dims()
	centers := make([][]float64, 0, km.nClusters)

	// 最初の中心はランダムに選ぶ
	first := make([]float64, cols)
	copy(first, mat.Row(nil, km.rng.Intn(rows), X))
	centers = append(centers, first)

	// 残りは最近傍中心からの距離の二乗に比例した確率で選ぶ
	distances := make([]float64, rows)
	for len(centers) < km.nClusters {
		total := 0.0
		for i := 0; i < rows; i++ {
			sample := mat.Row(nil, i, X)
			minDist := math.Inf(1)
			for _, center := range centers {
				if d := euclideanDistance(sample, center); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist * minDist
			total += distances[i]
		}

		target := km.rng.Float64() * total
		cumSum := 0.0
		selected := rows - 1
		for i := 0; i < rows; i++ {
			cumSum += distances[i]
			if cumSum >= target {
				selected = i
				break
			}
		}

		next := make([]float64, cols)
		copy(next, mat.Row(nil, selected, X))
		centers = append(centers, next)
	}

	return centers
}

// nearestCluster は最近傍のクラスタ中心のインデックスを返す
func nearestCluster(sample []float64, centers [][]float64) int {
	minDist := math.Inf(1)
	nearest := 0
	for c, center := range centers {
		if d := euclideanDistance(sample, center); d < minDist {
			minDist = d
			nearest = c
		}
	}
	return nearest
}

// euclideanDistance はユークリッド距離を計算する
func euclideanDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
