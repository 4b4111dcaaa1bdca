package notify

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"
)

// fetchIcon downloads url into a new file under dir and returns its path.
// A partial body is kept; a non-2xx response or an empty body yields "".
func fetchIcon(ctx context.Context, client *http.Client, dir, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "building icon request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "downloading icon %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Errorf("downloading icon %s: unexpected status %d", url, resp.StatusCode)
	}

	f, err := os.CreateTemp(dir, "logo-*")
	if err != nil {
		return "", errors.Wrap(err, "creating icon file")
	}
	n, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()

	if n == 0 || closeErr != nil {
		_ = os.Remove(f.Name())
		if copyErr != nil {
			return "", errors.Wrapf(copyErr, "reading icon %s", url)
		}
		if closeErr != nil {
			return "", errors.Wrap(closeErr, "writing icon file")
		}
		return "", nil
	}
	// keep what arrived; the server renders a truncated image or falls back
	return f.Name(), errors.Wrapf(copyErr, "reading icon %s", url)
}
