package displayinfo

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hoppxi/lc/pkg/backlight"
	"gopkg.in/yaml.v3"
)

type DisplayInfo struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Kind    string `json:"kind" yaml:"kind"`
	Current int    `json:"current" yaml:"current"`
	Max     int    `json:"max" yaml:"max"`
	Level   int    `json:"level" yaml:"level"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func level(percent float64) int {
	p := int(percent)
	if p < 0 {
		p = 0
	} else if p > 100 {
		p = 100
	}
	return p
}

func fromSummary(s backlight.Summary) DisplayInfo {
	info := DisplayInfo{
		ID:      s.ID,
		Name:    s.Name,
		Kind:    s.Kind,
		Current: s.Current,
		Max:     s.Max,
		Level:   level(s.Percent),
	}
	if s.Err != nil {
		info.Error = s.Err.Error()
	}
	return info
}

func GetDisplayInfo(reg *backlight.Registry, ctrl *backlight.Controller) ([]DisplayInfo, error) {
	sums, err := reg.Summaries(ctrl)
	if err != nil {
		return nil, err
	}

	infos := make([]DisplayInfo, 0, len(sums))
	for _, s := range sums {
		infos = append(infos, fromSummary(s))
	}
	return infos, nil
}

// Write renders infos as "table", "json" or "yaml".
func Write(w io.Writer, infos []DisplayInfo, format string) error {
	switch format {
	case "", "table":
		if len(infos) == 0 {
			_, err := fmt.Fprintln(w, "No devices found")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, info := range infos {
			if info.Error != "" {
				fmt.Fprintf(tw, "[%s]\t%s\terror: %s\n", info.Name, info.ID, info.Error)
				continue
			}
			fmt.Fprintf(tw, "[%s]\t%s\tcurrent lvl: %d/%d (%d%%)\n", info.Name, info.ID, info.Current, info.Max, info.Level)
		}
		return tw.Flush()
	case "json":
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}
