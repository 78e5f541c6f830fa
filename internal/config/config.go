package config

import "time"

// Config is the root configuration for taskdeck.
type Config struct {
	API APIConfig `json:"api"`
	UI  UIConfig  `json:"ui"`
}

// APIConfig holds the task API connection settings.
type APIConfig struct {
	BaseURL string   `json:"base_url"`
	Timeout Duration `json:"timeout,omitempty"`
}

// UIConfig holds dashboard rendering settings.
type UIConfig struct {
	DueDateSentinel string `json:"due_date_sentinel,omitempty"` // label for tasks without a due date
	Markdown        *bool  `json:"markdown,omitempty"`          // render descriptions as markdown (default true)
}

// RenderMarkdown reports whether task descriptions should be rendered as markdown.
func (u UIConfig) RenderMarkdown() bool {
	return u.Markdown == nil || *u.Markdown
}

// Duration wraps time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	// Remove quotes
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}
