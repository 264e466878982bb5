package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DownloadError reports a failed download, carrying the URL and the
// underlying cause. StatusCode is zero when the failure happened before any
// response arrived, which lets callers tell "no data at this URL" apart from
// "couldn't reach the data source". Callers decide whether it is fatal: the
// primary index file is, the rental one is not.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of %q failed: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Progress is the cumulative state of a download. Total is -1 when the
// server did not report a size.
type Progress struct {
	Received int64
	Total    int64
}

// Percent returns the completed fraction in [0,100] and whether it is known.
// When the total size is unknown, the fraction is only known at completion.
func (p Progress) Percent() (float64, bool) {
	if p.Total <= 0 {
		return 0, false
	}
	return 100 * float64(p.Received) / float64(p.Total), true
}

// ProgressFunc receives cumulative progress as chunks arrive. The reported
// fraction is monotonically non-decreasing and reaches 100 on completion.
type ProgressFunc func(Progress)

// Download fetches a resource and returns its decoded text, reporting
// byte-level progress as chunks arrive. Any non-success status or mid-stream
// read error is returned as a *DownloadError.
func Download(ctx context.Context, client *http.Client, url string, onProgress ProgressFunc) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &DownloadError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	total := resp.ContentLength // -1 when the server does not report it
	var b strings.Builder
	if total > 0 {
		b.Grow(int(total))
	}

	buf := make([]byte, 32*1024)
	var received int64
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			received += int64(n)
			b.Write(buf[:n])
			if onProgress != nil {
				onProgress(Progress{Received: received, Total: total})
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &DownloadError{URL: url, Err: err}
		}
	}

	// Completion: even an unknown-size download is now 100%.
	if onProgress != nil {
		onProgress(Progress{Received: received, Total: received})
	}
	return b.String(), nil
}
