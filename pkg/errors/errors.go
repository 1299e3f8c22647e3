// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// データセット取得・解析パイプラインの各段階（ネットワーク、展開、ファイルシステム、
// パース）を区別できる構造化されたエラー情報を提供します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("edago-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// これにより、MissingValueWarningなどのカスタム警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	データセット取得パイプラインのエラー型
//
// ===========================================================================

// NetworkError はリモートアーカイブの取得に失敗した場合のエラーです。
// ホスト到達不能、タイムアウト、非2xxレスポンスなどを表します。
type NetworkError struct {
	URL    string
	Status string // HTTPステータス（レスポンスを受け取れた場合のみ）
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("edago: fetch %s: unexpected status %s", e.URL, e.Status)
	}
	return fmt.Sprintf("edago: fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NetworkError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("url", e.URL).
		Str("status", e.Status).
		Str("type", "NetworkError")
}

// NewNetworkError は新しいNetworkErrorを作成し、スタックトレースを付与します。
func NewNetworkError(url, status string, err error) error {
	netErr := &NetworkError{URL: url, Status: status, Err: err}
	return errors.WithStack(netErr)
}

// ExtractionError はアーカイブの展開に失敗した場合のエラーです。
// アーカイブ破損、展開先への書き込み失敗、不正なエントリパスなどを表します。
type ExtractionError struct {
	Archive string
	Entry   string // 問題のあったアーカイブ内エントリ（特定できた場合のみ）
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("edago: extract %s: entry %q: %v", e.Archive, e.Entry, e.Err)
	}
	return fmt.Sprintf("edago: extract %s: %v", e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ExtractionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("archive", e.Archive).
		Str("entry", e.Entry).
		Str("type", "ExtractionError")
}

// NewExtractionError は新しいExtractionErrorを作成し、スタックトレースを付与します。
func NewExtractionError(archive, entry string, err error) error {
	extErr := &ExtractionError{Archive: archive, Entry: entry, Err: err}
	return errors.WithStack(extErr)
}

// FilesystemError はキャッシュ用ディレクトリの作成やファイル書き込みが
// 拒否された場合のエラーです。
type FilesystemError struct {
	Op   string // "mkdir", "create", "write" など
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("edago: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *FilesystemError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("op", e.Op).
		Str("path", e.Path).
		Str("type", "FilesystemError")
}

// NewFilesystemError は新しいFilesystemErrorを作成し、スタックトレースを付与します。
func NewFilesystemError(op, path string, err error) error {
	fsErr := &FilesystemError{Op: op, Path: path, Err: err}
	return errors.WithStack(fsErr)
}

// ParseError は表形式ファイルのパースに失敗した場合のエラーです。
// ヘッダ欠落、列数不一致、期待する列の欠如、数値変換失敗などを表します。
type ParseError struct {
	Source string // ファイルパスまたは入力の説明
	Column string // 問題のあった列名（特定できた場合のみ）
	Line   int    // 問題のあった行番号（1始まり、不明なら0）
	Reason string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("edago: parse %s", e.Source)
	if e.Line > 0 {
		msg += fmt.Sprintf(": line %d", e.Line)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(": column %q", e.Column)
	}
	return msg + ": " + e.Reason
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ParseError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("source", e.Source).
		Str("column", e.Column).
		Int("line", e.Line).
		Str("reason", e.Reason).
		Str("type", "ParseError")
}

// NewParseError は新しいParseErrorを作成し、スタックトレースを付与します。
func NewParseError(source, column string, line int, reason string) error {
	parseErr := &ParseError{Source: source, Column: column, Line: line, Reason: reason}
	return errors.WithStack(parseErr)
}

// ===========================================================================
//
//	推定器（エンコーダ・クラスタリング）のエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Transform` や `Predict` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("edago: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("edago: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、学習時に存在しなかったカテゴリ値をTransformに渡した場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("edago: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// MissingValueWarning は欠損値を含む行を除外した場合に発生する警告です。
// 例えば、total_bedrooms列に空セルを含む行をEDAの前に落とした場合など。
type MissingValueWarning struct {
	Column  string
	Dropped int
	Total   int
}

func (w *MissingValueWarning) Error() string {
	return fmt.Sprintf("dropped %d of %d rows with missing values in column %q", w.Dropped, w.Total, w.Column)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *MissingValueWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Int("dropped", w.Dropped).
		Int("total", w.Total).
		Str("type", "MissingValueWarning")
}

// NewMissingValueWarning は新しいMissingValueWarningを作成します。
func NewMissingValueWarning(column string, dropped, total int) *MissingValueWarning {
	return &MissingValueWarning{Column: column, Dropped: dropped, Total: total}
}

// ConvergenceWarning はクラスタリングが収束しなかった場合に発生する警告です。
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
}

func (w *ConvergenceWarning) Error() string {
	return fmt.Sprintf("%s failed to converge after %d iterations. Consider increasing max_iter or adjusting parameters.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning は新しいConvergenceWarningを作成します。
func NewConvergenceWarning(algorithm string, iterations int) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations}
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")
)
