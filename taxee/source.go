package taxee

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed data
var embedded embed.FS

// fsSource reads documents named <year>/<region>.json from a file system.
type fsSource struct {
	fsys fs.FS
}

// Embedded returns the source of the embedded documents.
func Embedded() Source {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // the data directory is always embedded.
	}
	return fsSource{sub}
}

// Dir returns a source reading documents from a file system laid out like
// the taxee-tax-statistics statistics directory.
func Dir(fsys fs.FS) Source { return fsSource{fsys} }

func (s fsSource) Open(year int, region string) (io.ReadCloser, error) {
	return s.fsys.Open(fmt.Sprintf("%d/%s.json", year, region))
}

// DefaultURL is the location of the taxee-tax-statistics documents.
const DefaultURL = "https://raw.githubusercontent.com/taxee/taxee-tax-statistics/master/src/statistics"

// remote reads documents over HTTP.
type remote struct {
	client *http.Client
	base   string
}

// NewRemote returns a source of documents published under base, like
// DefaultURL. Responses are cached on disk for the day.
func NewRemote(base string) Source {
	return NewRemoteClient(base, daily())
}

// NewRemoteClient is like NewRemote with a specific http.Client.
func NewRemoteClient(base string, client *http.Client) Source {
	return &remote{client: client, base: strings.TrimSuffix(base, "/")}
}

func (r *remote) Open(year int, region string) (io.ReadCloser, error) {
	addr := fmt.Sprintf("%s/%d/%s.json", r.base, year, region)
	resp, err := r.client.Get(addr)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("cannot http GET %v: %w", addr, fs.ErrNotExist)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return resp.Body, nil
}
