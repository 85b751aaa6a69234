// Package csvstore はCSVファイルを読み込むインメモリ価格レコードストアを提供します。
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"mandi_backend/internal/feature/decision/domain/entity"
)

// DefaultRegion は地域が未指定の行に割り当てられる全国集計用のセンチネル値です。
const DefaultRegion = "ALL"

// dateLayouts はソースデータで許容される日付フォーマットです。
// 新レイアウトはISO形式、旧レイアウトはDD/MM/YYYY形式を使用します。
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// headerAliases はソースのヘッダー名を正規フィールドにマッピングします。
// 各フィールドのエイリアスは優先度順で、新レイアウトの列名が先頭です。
var headerAliases = map[string][]string{
	"commodity": {"commodity"},
	"region":    {"region", "state"},
	"price":     {"modal_price", "modal_x0020_price", "price"},
	"date":      {"arrival_date", "arrival_x0020_date", "price_date", "date"},
}

// Store は正規化済みの価格観測データを保持するインメモリストアです。
// 読み込みは一度だけ実行され、クエリは読み込み完了を待ってから応答します。
// 読み込み完了後のデータは不変として扱います。
type Store struct {
	path string

	once sync.Once
	mu   sync.RWMutex

	records []entity.PriceObservation
	dropped int
}

// New は指定されたCSVファイルパスでStoreの新しいインスタンスを生成します。
// この時点ではファイルは読み込まれません。
func New(path string) *Store {
	return &Store{path: path}
}

// Load はソースファイルの読み込みを開始します。初回呼び出しのみ実際に読み込み、
// 以降の呼び出し（および並行呼び出し）は読み込み完了まで待機して戻ります。
// ファイルが存在しない・破損している場合もエラーにはせず、空のストアとして動作します。
func (s *Store) Load() {
	s.once.Do(s.load)
}

// Reload はソースファイルを再読み込みし、保持データを丸ごと置き換えます。
// 起動後に呼ばれることは想定していませんが、何度呼んでも安全です。
func (s *Store) Reload() {
	s.Load()
	s.load()
}

// load はCSVを解析し、検証を通過した行だけでストア内容を置き換えます。
func (s *Store) load() {
	records, dropped, err := parseFile(s.path)
	if err != nil {
		// 読み込み失敗は「データなし」として扱い、システムは空の結果で稼働を続ける
		slog.Warn("price data unavailable, store starts empty", "path", s.path, "error", err)
	}

	s.mu.Lock()
	s.records = records
	s.dropped = dropped
	s.mu.Unlock()

	slog.Info("price data loaded", "path", s.path, "records", len(records), "dropped", dropped)
}

// Query は品目名が大文字小文字を無視して一致するすべての観測を返します。
// 一致がない場合はエラーではなく空のスライスを返します。
func (s *Store) Query(ctx context.Context, commodity string) []entity.PriceObservation {
	s.Load()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entity.PriceObservation
	for _, r := range s.records {
		if strings.EqualFold(r.Commodity, commodity) {
			out = append(out, r)
		}
	}
	return out
}

// Commodities は読み込み済みデータに含まれる品目名をソート・重複排除して返します。
func (s *Store) Commodities(ctx context.Context) []string {
	s.Load()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return distinct(s.records, func(r entity.PriceObservation) string { return r.Commodity })
}

// Regions は読み込み済みデータに含まれる地域名をソート・重複排除して返します。
func (s *Store) Regions(ctx context.Context) []string {
	s.Load()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return distinct(s.records, func(r entity.PriceObservation) string { return r.Region })
}

// Dropped は読み込み時に検証で破棄された行数を返します。
func (s *Store) Dropped() int {
	s.Load()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dropped
}

// distinct はキー関数で抽出した値をソート・重複排除して返します。
func distinct(records []entity.PriceObservation, key func(entity.PriceObservation) string) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// parseFile はCSVファイルを読み込み、正規化済みの観測と破棄行数を返します。
func parseFile(path string) ([]entity.PriceObservation, int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, errors.New("source file does not exist")
		}
		return nil, 0, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close source file", "path", path, "error", err)
		}
	}()

	return parse(f)
}

// parse はCSVストリームを解析します。ヘッダー行で列位置を解決し、
// 検証を通過しない行は黙って破棄します（破棄数はカウントされます）。
func parse(r io.Reader) ([]entity.PriceObservation, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // 列数のばらつきは行単位の検証で処理する
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, errors.New("source file is empty or has no header")
	}
	cols := resolveColumns(header)
	if _, ok := cols["commodity"]; !ok {
		return nil, 0, errors.New("source file has no commodity column")
	}

	var (
		records []entity.PriceObservation
		dropped int
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// 引用符の崩れ等で行が読めない場合もその行だけを破棄する
			dropped++
			continue
		}
		obs, ok := normalizeRow(row, cols)
		if !ok {
			dropped++
			continue
		}
		records = append(records, obs)
	}
	return records, dropped, nil
}

// resolveColumns はヘッダー行を正規フィールド名→列インデックスに解決します。
// 新旧レイアウトの両方を受け付け、両方の列が存在する場合は新レイアウト側を優先します。
func resolveColumns(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(map[string]int, len(headerAliases))
	for field, aliases := range headerAliases {
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				cols[field] = i
				break
			}
		}
	}
	return cols
}

// normalizeRow は1行を検証・正規化します。検証に失敗した場合は ok=false を返します。
func normalizeRow(row []string, cols map[string]int) (entity.PriceObservation, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	commodity := field("commodity")
	if commodity == "" {
		return entity.PriceObservation{}, false
	}

	region := field("region")
	if region == "" {
		region = DefaultRegion
	}

	price, err := strconv.ParseFloat(field("price"), 64)
	if err != nil || price <= 0 {
		return entity.PriceObservation{}, false
	}

	date, ok := parseDate(field("date"))
	if !ok {
		return entity.PriceObservation{}, false
	}

	return entity.PriceObservation{
		Commodity: commodity,
		Region:    region,
		Date:      date,
		Price:     price,
	}, true
}

// parseDate は許容フォーマットのいずれかで日付を解析します。
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
