package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/hjson/hjson-go/v4"
)

const (
	DefaultHTTPTimeout    = 10 * time.Second
	DefaultUserAgent      = "peermap"
	DefaultWorkerPoolSize = 512
)

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	dur, err := time.ParseDuration(vv)
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	d.Duration = dur

	return nil
}

type config struct {
	ProviderURL    string   `json:"provider_url"`
	HTTPTimeout    duration `json:"http_timeout"`
	UserAgent      string   `json:"user_agent"`
	WorkerPoolSize uint     `json:"worker_pool_size"`
}

func (c config) GetProviderURL() string {
	return c.ProviderURL
}

func (c config) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout.Duration == 0 {
		return DefaultHTTPTimeout
	}

	return c.HTTPTimeout.Duration
}

func (c config) GetUserAgent() string {
	if c.UserAgent == "" {
		return DefaultUserAgent
	}

	return c.UserAgent
}

func (c config) GetWorkerPoolSize() int {
	if c.WorkerPoolSize == 0 {
		return DefaultWorkerPoolSize
	}

	return int(c.WorkerPoolSize)
}

func parseConfig(path string) (*config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	conf := config{}
	rawMap := map[string]interface{}{}

	if err := hjson.Unmarshal(content, &rawMap); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}

	rawBytes, _ := json.Marshal(rawMap)

	if err := json.Unmarshal(rawBytes, &conf); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}

	if conf.ProviderURL != "" {
		parsed, err := url.Parse(conf.ProviderURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return nil, fmt.Errorf("incorrect provider url: %s", conf.ProviderURL)
		}
	}

	return &conf, nil
}
