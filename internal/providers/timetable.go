package providers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rydey/attendance-bot/internal/service"
)

// TimetableProvider loads the weekly class schedule from an HTML page. The
// first table on the page is expected to hold <td>day</td><td>class</td>
// rows; anything else is skipped.
type TimetableProvider struct {
	url      string
	loadPage func(context.Context, string) ([]byte, error)
}

func NewTimetableProvider(url string) *TimetableProvider {
	return &TimetableProvider{
		url:      url,
		loadPage: loadPage,
	}
}

func (p *TimetableProvider) Schedule(ctx context.Context) (service.WeekSchedule, error) {
	html, err := p.loadPage(ctx, p.url)
	if err != nil {
		return nil, fmt.Errorf("load timetable page: %w", err)
	}

	res, err := parseTimetablePage(html)
	if err != nil {
		return nil, fmt.Errorf("parse timetable page: %w", err)
	}

	return res, nil
}

func parseTimetablePage(html []byte) (service.WeekSchedule, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errors.New("find timetable by [table] selector")
	}

	res := make(service.WeekSchedule)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 { //nolint:mnd // day + class
			return
		}

		day, dErr := service.ParseWeekday(strings.TrimSpace(cells.Eq(0).Text()))
		if dErr != nil {
			return
		}

		class := strings.TrimSpace(cells.Eq(1).Text())
		if class == "" {
			return
		}

		res[day] = class
	})

	if len(res) == 0 {
		return nil, errors.New("timetable has no recognizable day rows")
	}

	return res, nil
}

func loadPage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get timetable from page=%s: %w", url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get timetable from page=%s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get timetable from page=%s: status=%s", url, resp.Status)
	}

	var res bytes.Buffer
	_, err = res.ReadFrom(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read timetable from page=%s: %w", url, err)
	}

	return res.Bytes(), nil
}
