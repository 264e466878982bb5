package marketdata

import (
	"flag"
	"fmt"
	"os"
)

// SourceKind selects the loading strategy of a data source.
type SourceKind string

const (
	// KindBulk downloads and parses the whole dataset up front and serves
	// everything from memory, persisting the parsed result durably.
	KindBulk SourceKind = "bulk"
	// KindOnDemand fetches exactly one region's pair of small files per
	// request, with no bulk cache.
	KindOnDemand SourceKind = "ondemand"
	// KindSample serves a small fixed set of records and always succeeds.
	KindSample SourceKind = "sample"
)

// ParseSourceKind validates a user-supplied source kind.
func ParseSourceKind(s string) (SourceKind, error) {
	switch SourceKind(s) {
	case KindBulk, KindOnDemand, KindSample:
		return SourceKind(s), nil
	}
	return "", fmt.Errorf("unknown source kind %q: want %q, %q or %q", s, KindBulk, KindOnDemand, KindSample)
}

// Environment variables mirroring each flag, used when the flag is not set.
const (
	envValuesURL    = "HFM_VALUES_URL"
	envRentsURL     = "HFM_RENTS_URL"
	envBaseURL      = "HFM_BASE_URL"
	envDirectoryURL = "HFM_DIRECTORY_URL"
)

var (
	sourceKindFlag   = flag.String("source", string(KindBulk), "Data source kind: bulk, ondemand or sample.")
	valuesURLFlag    = flag.String("values-url", "", "URL of the bulk home-value index file.\n If missing it is read from the environment variable "+envValuesURL+".")
	rentsURLFlag     = flag.String("rents-url", "", "URL of the bulk rental index file.\n If missing it is read from the environment variable "+envRentsURL+".")
	baseURLFlag      = flag.String("base-url", "", "Base URL of the per-region files used in on-demand mode.\n If missing it is read from the environment variable "+envBaseURL+".")
	directoryURLFlag = flag.String("directory-url", "", "URL of the region directory listing.\n If missing it is read from the environment variable "+envDirectoryURL+".")
	namespaceFlag    = flag.String("cache-namespace", "markets", "Durable cache namespace, isolating data sources from each other.")
)

// withEnv returns the flag value, falling back to the environment variable.
func withEnv(flagValue, env string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(env)
}

// Config is the recognized configuration surface of one data source.
type Config struct {
	Kind         SourceKind // deployment default, overridable by a persisted user preference
	ValuesURL    string     // bulk home-value file
	RentsURL     string     // bulk rental file
	BaseURL      string     // on-demand per-region files root
	DirectoryURL string     // region directory listing
	Namespace    string     // durable cache namespace
}

// DefaultConfig builds the deployment configuration from flags and
// environment.
func DefaultConfig() Config {
	return Config{
		Kind:         SourceKind(*sourceKindFlag),
		ValuesURL:    withEnv(*valuesURLFlag, envValuesURL),
		RentsURL:     withEnv(*rentsURLFlag, envRentsURL),
		BaseURL:      withEnv(*baseURLFlag, envBaseURL),
		DirectoryURL: withEnv(*directoryURLFlag, envDirectoryURL),
		Namespace:    *namespaceFlag,
	}
}

// identity is the memoization key of a configuration: two configs with the
// same identity share one provider instance.
func (c Config) identity() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s", c.Kind, c.ValuesURL, c.RentsURL, c.BaseURL, c.DirectoryURL, c.Namespace)
}
