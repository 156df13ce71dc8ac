package statusboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/castawaylabs/status-board/backends"
	cachetbackend "github.com/castawaylabs/status-board/backends/cachet"
	statuspagebackend "github.com/castawaylabs/status-board/backends/statuspage"
	"github.com/castawaylabs/status-board/cards"
	"github.com/castawaylabs/status-board/feeds"
	"github.com/castawaylabs/status-board/system"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const DefaultListen = ":8080"

// configTimeout bounds downloading a remote config.
var configTimeout = backends.DefaultTimeout

type StatusBoard struct {
	SystemName string                        `json:"system_name" yaml:"system_name"`
	DateFormat string                        `json:"date_format" yaml:"date_format"`
	Listen     string                        `json:"listen" yaml:"listen"`
	RawBackend map[string]interface{}        `json:"backend" yaml:"backend"`
	Templates  map[string]cards.CardTemplate `json:"templates" yaml:"templates"`

	Backend  backends.BackendInterface `json:"-" yaml:"-"`
	Renderer *cards.Renderer           `json:"-" yaml:"-"`
}

// New reads the configuration from a file or an http(s) URL. An empty path
// yields the built-in defaults.
func New(path string) (*StatusBoard, error) {
	cfg := &StatusBoard{}
	if len(path) == 0 {
		return cfg, nil
	}

	data, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse config %s: %w", path, err)
	}

	return cfg, nil
}

func readConfig(path string) ([]byte, error) {
	// test if its a url
	u, err := url.ParseRequestURI(path)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		client := backends.NewClient(false)
		client.Timeout = configTimeout

		response, err := client.Get(path)
		if err != nil {
			return nil, errors.New("Cannot download network config: " + err.Error())
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("Cannot download network config: HTTP %d", response.StatusCode)
		}

		logrus.Infof("Downloaded network configuration from %s", path)
		return io.ReadAll(response.Body)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("Config file '" + path + "' missing!")
	}

	return data, nil
}

// SetBackendOption overrides one raw backend setting, e.g. from a flag.
func (cfg *StatusBoard) SetBackendOption(key string, value interface{}) {
	if cfg.RawBackend == nil {
		cfg.RawBackend = map[string]interface{}{}
	}
	cfg.RawBackend[key] = value
}

// Validate fills defaults, builds the backend and the card renderer, and
// logs every problem found.
func (cfg *StatusBoard) Validate() bool {
	valid := true

	if len(cfg.SystemName) == 0 {
		cfg.SystemName = system.GetHostname()
	}
	if len(cfg.DateFormat) == 0 {
		cfg.DateFormat = cards.DefaultDateFormat
	}
	if len(cfg.Listen) == 0 {
		cfg.Listen = DefaultListen
	}

	backend, err := cfg.decodeBackend()
	if err != nil {
		logrus.Warnf("Backend configuration error: %v", err)
		valid = false
	} else if errs := backend.Validate(); len(errs) > 0 {
		logrus.Warnf("Backend validation errors: %v", "\n - "+strings.Join(errs, "\n - "))
		valid = false
	} else {
		cfg.Backend = backend
	}

	templates := map[feeds.Category]cards.CardTemplate{}
	for name, tpl := range cfg.Templates {
		category, err := feeds.ParseCategory(name)
		if err != nil {
			logrus.Warnf("Template for %v", err)
			valid = false
			continue
		}
		templates[category] = tpl
	}

	cfg.Renderer, err = cards.NewRenderer(cfg.DateFormat, templates)
	if err != nil {
		logrus.Warnf("Template error: %v", err)
		valid = false
	}

	return valid
}

func (cfg *StatusBoard) decodeBackend() (backends.BackendInterface, error) {
	var backend backends.BackendInterface

	backendType, _ := cfg.RawBackend["type"].(string)
	switch GetBackendType(backendType) {
	case "statuspage":
		backend = &statuspagebackend.StatuspageBackend{}
	case "cachet":
		backend = &cachetbackend.CachetBackend{}
	default:
		return nil, fmt.Errorf("unknown backend type %q", backendType)
	}

	raw := make(map[string]interface{}, len(cfg.RawBackend))
	for k, v := range cfg.RawBackend {
		if k != "type" {
			raw[k] = v
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           backend,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	return backend, nil
}

func GetBackendType(t string) string {
	if len(t) == 0 {
		return "statuspage"
	}

	return strings.ToLower(t)
}
