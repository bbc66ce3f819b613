package dataaccess

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"mime"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Shaoyanting/HT-financial-system/internal/transport"
	"github.com/Shaoyanting/HT-financial-system/internal/types"
	"github.com/Shaoyanting/HT-financial-system/pkg/errors"
	"github.com/Shaoyanting/HT-financial-system/pkg/response"
)

// mockAssetCount is the size of the synthetic universe backing list
// fallbacks, matching the demo dataset size.
const mockAssetCount = 50

// ListParams are the asset grid query controls.
type ListParams struct {
	Page      int
	Size      int
	Search    string
	Category  string
	SortBy    string
	SortOrder string // "asc" or "desc"
	DateFrom  string
	DateTo    string
}

func (p ListParams) normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = 10
	}
	if p.SortOrder != "desc" {
		p.SortOrder = "asc"
	}
	return p
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("size", strconv.Itoa(p.Size))
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
		v.Set("sortOrder", p.SortOrder)
	}
	if p.DateFrom != "" {
		v.Set("dateFrom", p.DateFrom)
	}
	if p.DateTo != "" {
		v.Set("dateTo", p.DateTo)
	}
	return v
}

// GetAssets returns one page of holdings. The backend sometimes returns the
// full unpaginated set; when the reported total fits in the returned rows
// the client does its own slicing, otherwise the server slice is trusted
// verbatim. Missing server stats are reduced from the returned page.
func (s *Service) GetAssets(ctx context.Context, params ListParams) (*response.Envelope[types.AssetPage], error) {
	params = params.normalize()

	env, err := fetch(ctx, s, "/assets?"+params.values().Encode(), func() types.AssetPage {
		return s.mockAssetPage(params)
	})
	if err != nil {
		return nil, err
	}
	if env.Success {
		env.Data = reconcilePage(env.Data, params)
	}
	return env, nil
}

// GetAssetByID returns one holding, nil when the id is unknown.
func (s *Service) GetAssetByID(ctx context.Context, id int) (*response.Envelope[*types.Asset], error) {
	return fetch(ctx, s, fmt.Sprintf("/assets/%d", id), func() *types.Asset {
		assets := s.gen.Assets(mockAssetCount)
		for i := range assets {
			if assets[i].ID == id {
				return &assets[i]
			}
		}
		return nil
	})
}

// GetAssetHistory returns the daily price series for a holding, newest
// last.
func (s *Service) GetAssetHistory(ctx context.Context, id, days int) (*response.Envelope[[]types.HistoricalPrice], error) {
	if days <= 0 {
		days = 30
	}
	endpoint := fmt.Sprintf("/assets/%d/history?days=%d", id, days)
	return fetch(ctx, s, endpoint, func() []types.HistoricalPrice {
		return s.gen.HistoricalPrices(strconv.Itoa(id), days)
	})
}

// ExportAssets downloads the filtered holdings as CSV. The filename comes
// from the Content-Disposition header when present. Without a session or
// with an unreachable backend the CSV is produced locally from generated
// data.
func (s *Service) ExportAssets(ctx context.Context, params ListParams) (string, []byte, error) {
	params = params.normalize()

	if !s.session.IsAuthenticated() {
		return defaultExportName(time.Now()), s.mockExportCSV(params), nil
	}

	q := params.values()
	q.Set("export", "true")
	resp, err := s.client.Get(ctx, "/assets?"+q.Encode(), transport.Silent(s.timeout))
	if err != nil {
		if errors.IsAuthRequired(err) {
			return "", nil, err
		}
		s.log.Warn().Err(err).Msg("export failed, generating csv locally")
		return defaultExportName(time.Now()), s.mockExportCSV(params), nil
	}

	name := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = defaultExportName(time.Now())
	}
	return name, resp.RawBody, nil
}

// reconcilePage applies the slicing rule and fills in missing stats.
func reconcilePage(page types.AssetPage, params ListParams) types.AssetPage {
	if page.Pagination.Total <= len(page.Data) {
		total := len(page.Data)
		page.Data = slicePage(page.Data, params.Page, params.Size)
		page.Pagination = response.NewPagination(total, params.Page, params.Size)
		page.Stats = ComputeStats(page.Data)
		return page
	}
	if page.Stats.Count == 0 && len(page.Data) > 0 {
		page.Stats = ComputeStats(page.Data)
	}
	return page
}

func (s *Service) mockAssetPage(p ListParams) types.AssetPage {
	return QueryAssets(s.gen.Assets(mockAssetCount), p)
}

// QueryAssets filters, sorts and pages a full holdings set, reducing stats
// over the returned page. The reference server and the mock fallback share
// this so both sources answer a query identically.
func QueryAssets(assets []types.Asset, p ListParams) types.AssetPage {
	p = p.normalize()
	filtered := filterAssets(assets, p.Search, p.Category)
	sortAssets(filtered, p.SortBy, p.SortOrder)

	total := len(filtered)
	pageData := slicePage(filtered, p.Page, p.Size)
	return types.AssetPage{
		Pagination: response.NewPagination(total, p.Page, p.Size),
		Data:       pageData,
		Stats:      ComputeStats(pageData),
	}
}

// filterAssets returns a fresh slice of rows matching the search term
// (code or name, case-insensitive) and category. The input is never
// mutated; callers sort the result in place.
func filterAssets(assets []types.Asset, search, category string) []types.Asset {
	needle := strings.ToLower(search)
	out := make([]types.Asset, 0, len(assets))
	for _, a := range assets {
		if category != "" && string(a.AssetCategory) != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(a.Code), needle) &&
			!strings.Contains(strings.ToLower(a.Name), needle) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// sortAssets orders rows by a named column. Unknown columns keep id order.
func sortAssets(assets []types.Asset, sortBy, sortOrder string) {
	var less func(a, b types.Asset) bool
	switch sortBy {
	case "code":
		less = func(a, b types.Asset) bool { return a.Code < b.Code }
	case "name":
		less = func(a, b types.Asset) bool { return a.Name < b.Name }
	case "currentPrice":
		less = func(a, b types.Asset) bool { return a.CurrentPrice < b.CurrentPrice }
	case "changePercent":
		less = func(a, b types.Asset) bool { return a.ChangePercent < b.ChangePercent }
	case "marketValue":
		less = func(a, b types.Asset) bool { return a.MarketValue < b.MarketValue }
	case "dailyGain":
		less = func(a, b types.Asset) bool { return a.DailyGain < b.DailyGain }
	case "totalGain":
		less = func(a, b types.Asset) bool { return a.TotalGain < b.TotalGain }
	case "weight":
		less = func(a, b types.Asset) bool { return a.Weight < b.Weight }
	default:
		less = func(a, b types.Asset) bool { return a.ID < b.ID }
	}
	sort.SliceStable(assets, func(i, j int) bool {
		if sortOrder == "desc" {
			return less(assets[j], assets[i])
		}
		return less(assets[i], assets[j])
	})
}

// slicePage cuts one page out of the full set. A page past the end yields
// an empty, non-nil slice.
func slicePage(assets []types.Asset, page, size int) []types.Asset {
	start := (page - 1) * size
	if start >= len(assets) {
		return []types.Asset{}
	}
	end := start + size
	if end > len(assets) {
		end = len(assets)
	}
	return assets[start:end]
}

// ComputeStats reduces the aggregate figures over the loaded rows. Count
// reflects the rows reduced, not the filtered total.
func ComputeStats(assets []types.Asset) types.AssetStats {
	stats := types.AssetStats{Count: len(assets)}
	for _, a := range assets {
		stats.TotalDailyGain += a.DailyGain
		stats.TotalMarketValue += a.MarketValue
		stats.AvgChangePercent += a.ChangePercent
	}
	if len(assets) > 0 {
		stats.AvgChangePercent = round2(stats.AvgChangePercent / float64(len(assets)))
	}
	stats.TotalDailyGain = round2(stats.TotalDailyGain)
	stats.TotalMarketValue = round2(stats.TotalMarketValue)
	return stats
}

func (s *Service) mockExportCSV(p ListParams) []byte {
	assets := filterAssets(s.gen.Assets(mockAssetCount), p.Search, p.Category)
	sortAssets(assets, p.SortBy, p.SortOrder)
	return AssetsCSV(assets)
}

// AssetsCSV renders holdings as CSV with a header row.
func AssetsCSV(assets []types.Asset) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{
		"id", "code", "name", "assetCategory", "currentPrice", "changePercent",
		"marketValue", "position", "costPrice", "weight", "dailyGain", "totalGain",
	})
	for _, a := range assets {
		w.Write([]string{
			strconv.Itoa(a.ID),
			a.Code,
			a.Name,
			string(a.AssetCategory),
			formatFloat(a.CurrentPrice),
			formatFloat(a.ChangePercent),
			formatFloat(a.MarketValue),
			strconv.Itoa(a.Position),
			formatFloat(a.CostPrice),
			formatFloat(a.Weight),
			formatFloat(a.DailyGain),
			formatFloat(a.TotalGain),
		})
	}
	w.Flush()
	return buf.Bytes()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func filenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func defaultExportName(now time.Time) string {
	return "assets_export_" + now.Format("20060102") + ".csv"
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
