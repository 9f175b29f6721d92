package taxee

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/etnz/equity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, v float64) equity.Money {
	t.Helper()
	return equity.M(v)
}

func TestEmbedded_Federal(t *testing.T) {
	p := NewEmbedded()

	table, err := p.TaxTable(2021, equity.Federal, equity.Single, false)
	require.NoError(t, err)
	assert.True(t, table.Deduction.Equal(money(t, 12550)), "deduction %s", table.Deduction)
	require.Len(t, table.Brackets, 7)
	assert.True(t, table.Brackets[1].IncomeLevel.Equal(money(t, 9950)))
	assert.True(t, table.Brackets[1].MarginalRate.Equal(equity.R(0.12)), "rate %s", table.Brackets[1].MarginalRate)
	assert.True(t, table.Brackets[6].MarginalRate.Equal(equity.R(0.37)))

	// 10% of 9950, 12% of 30575, 22% of 9475
	tax := table.Brackets.Tax(money(t, 50000))
	assert.True(t, tax.Equal(money(t, 6748.5)), "tax %s", tax)

	married, err := p.TaxTable(2020, "Federal", equity.MarriedJointly, false)
	require.NoError(t, err)
	assert.True(t, married.Deduction.Equal(money(t, 24800)))
	assert.True(t, married.Brackets[1].IncomeLevel.Equal(money(t, 19750)))
}

func TestEmbedded_CapitalGains(t *testing.T) {
	p := NewEmbedded()

	table, err := p.TaxTable(2021, equity.Federal, equity.Single, true)
	require.NoError(t, err)
	assert.True(t, table.Deduction.IsZero())
	require.Len(t, table.Brackets, 7)
	want := []float64{0, 0, 0.15, 0.15, 0.15, 0.15, 0.20}
	for i, r := range want {
		assert.True(t, table.Brackets[i].MarginalRate.Equal(equity.R(r)), "bracket %d rate %s", i, table.Brackets[i].MarginalRate)
	}

	_, err = p.TaxTable(2021, "california", equity.Single, true)
	assert.Error(t, err)
}

func TestEmbedded_State(t *testing.T) {
	p := NewEmbedded()

	table, err := p.TaxTable(2020, "California", equity.Single, false)
	require.NoError(t, err)
	assert.True(t, table.Deduction.Equal(money(t, 4601)))
	require.Len(t, table.Brackets, 9)
	assert.True(t, table.Brackets[5].MarginalRate.Equal(equity.R(0.093)))
	assert.NoError(t, table.Brackets.Validate())

	for _, year := range []int{2020, 2021} {
		for _, status := range []equity.FilingStatus{equity.Single, equity.MarriedJointly, equity.MarriedSeparately, equity.HeadOfHousehold} {
			for _, region := range []string{equity.Federal, "california"} {
				_, err := p.TaxTable(year, region, status, false)
				assert.NoError(t, err, "%d %s %s", year, region, status)
			}
		}
	}
}

func TestEmbedded_Unavailable(t *testing.T) {
	p := NewEmbedded()
	tests := []struct {
		year   int
		region string
		status equity.FilingStatus
	}{
		{2019, equity.Federal, equity.Single},
		{2021, "texas", equity.Single},
		{2021, equity.Federal, "widow"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d %s %s", tt.year, tt.region, tt.status), func(t *testing.T) {
			_, err := p.TaxTable(tt.year, tt.region, tt.status, false)
			var unavailable *equity.TaxDataUnavailableError
			require.ErrorAs(t, err, &unavailable)
			assert.Equal(t, tt.year, unavailable.Year)
			assert.Equal(t, tt.region, unavailable.Jurisdiction)
		})
	}
}

func TestEmbedded_Calculator(t *testing.T) {
	c := equity.NewCalculator(NewEmbedded())
	f := equity.Filing{
		Year:         2021,
		GrossIncome:  money(t, 150000),
		Withholdings: money(t, 19200),
		State:        "california",
		Status:       equity.Single,
	}
	got, err := c.IncomeTax(f)
	require.NoError(t, err)
	// federal taxable income is 118250:
	// 995 + 3669 + 10087 + 24% of 31875
	assert.True(t, got.Federal.Equal(money(t, 995+3669+10087+7650)), "federal %s", got.Federal.Decimal())
	assert.True(t, got.State.IsPositive())
}

func TestRegion(t *testing.T) {
	assert.Equal(t, "new_york", Region("New York"))
	assert.Equal(t, "federal", Region(" Federal "))
	assert.Equal(t, "district_of_columbia", Region("district of columbia"))
}

const texas = `{"single": {"type": null, "income_tax_brackets": null, "deductions": []}}`

func TestDir_NoIncomeTax(t *testing.T) {
	p := New(Dir(fstest.MapFS{
		"2021/texas.json": &fstest.MapFile{Data: []byte(texas)},
	}))
	table, err := p.TaxTable(2021, "Texas", equity.Single, false)
	require.NoError(t, err)
	assert.True(t, table.Deduction.IsZero())
	assert.True(t, table.Brackets.Tax(money(t, 100000)).IsZero())
}

func TestDir_Invalid(t *testing.T) {
	p := New(Dir(fstest.MapFS{
		"2021/broken.json":   &fstest.MapFile{Data: []byte(`{"single": `)},
		"2021/unsorted.json": &fstest.MapFile{Data: []byte(`{"single": {"income_tax_brackets": [{"bracket": 100, "marginal_rate": 1}, {"bracket": 0, "marginal_rate": 2}]}}`)},
		"2021/text.json":     &fstest.MapFile{Data: []byte(`{"single": {"income_tax_brackets": [{"bracket": "zero", "marginal_rate": 1}]}}`)},
	}))
	for _, region := range []string{"broken", "unsorted", "text"} {
		_, err := p.TaxTable(2021, region, equity.Single, false)
		var unavailable *equity.TaxDataUnavailableError
		assert.Error(t, err, region)
		assert.False(t, errors.As(err, &unavailable), "%s: invalid data is not missing data", region)
	}
}

// countingSource counts the documents opened.
type countingSource struct {
	Source
	mu    sync.Mutex
	opens int
}

func (s *countingSource) Open(year int, region string) (io.ReadCloser, error) {
	s.mu.Lock()
	s.opens++
	s.mu.Unlock()
	return s.Source.Open(year, region)
}

func TestProvider_Cache(t *testing.T) {
	src := &countingSource{Source: Embedded()}
	p := New(src)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.TaxTable(2021, equity.Federal, equity.Single, false)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	_, err := p.TaxTable(2021, equity.Federal, equity.MarriedJointly, true)
	require.NoError(t, err)
	assert.Equal(t, 1, src.opens)
}

func TestRemote(t *testing.T) {
	federal, err := Embedded().Open(2021, "federal")
	require.NoError(t, err)
	body, err := io.ReadAll(federal)
	require.NoError(t, err)
	federal.Close()

	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/statistics/2021/federal.json":
			w.Write(body)
		case "/statistics/2021/oregon.json":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := New(NewRemoteClient(srv.URL+"/statistics/", srv.Client()))

	table, err := p.TaxTable(2021, equity.Federal, equity.Single, false)
	require.NoError(t, err)
	assert.True(t, table.Deduction.Equal(money(t, 12550)))

	_, err = p.TaxTable(2021, "New Mexico", equity.Single, false)
	var unavailable *equity.TaxDataUnavailableError
	require.ErrorAs(t, err, &unavailable)

	_, err = p.TaxTable(2021, "oregon", equity.Single, false)
	require.Error(t, err)
	assert.False(t, errors.As(err, &unavailable), "a server error is not missing data")
	assert.True(t, strings.Contains(err.Error(), "500"), err.Error())

	assert.Equal(t, []string{"/statistics/2021/federal.json", "/statistics/2021/new_mexico.json", "/statistics/2021/oregon.json"}, paths)
}

func TestDiskCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"single": {}}`))
	}))
	defer srv.Close()

	client := &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: t.TempDir()}}
	for range 3 {
		resp, err := client.Get(srv.URL + "/doc")
		require.NoError(t, err)
		got, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, `{"single": {}}`, string(got))
	}
	assert.Equal(t, 1, hits)

	// errors are not cached.
	for range 2 {
		resp, err := client.Get(srv.URL + "/missing")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
	assert.Equal(t, 3, hits)
}
