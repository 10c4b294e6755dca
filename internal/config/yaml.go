// internal/config/yaml.go
package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// looseInt decodes 21324 and "21324" alike.
type looseInt int

func (i *looseInt) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected an integer", n.Line)
	}
	v, err := strconv.Atoi(strings.TrimSpace(n.Value))
	if err != nil {
		return fmt.Errorf("line %d: %q is not an integer", n.Line, n.Value)
	}
	*i = looseInt(v)
	return nil
}

var udpKeys = map[string]bool{
	"ip_address":      true,
	"port":            true,
	"pixel_count":     true,
	"include_indexes": true,
	"data_prefix":     true,
	"data_postfix":    true,
}

// UnmarshalYAML accepts quoted integers for port and pixel_count.
// Unknown keys are still rejected.
func (c *UDPConfig) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; !udpKeys[k.Value] {
				return fmt.Errorf("line %d: field %s not found in udp block", k.Line, k.Value)
			}
		}
	}

	var raw struct {
		IPAddress      string   `yaml:"ip_address"`
		Port           looseInt `yaml:"port"`
		PixelCount     looseInt `yaml:"pixel_count"`
		IncludeIndexes bool     `yaml:"include_indexes"`
		DataPrefix     string   `yaml:"data_prefix"`
		DataPostfix    string   `yaml:"data_postfix"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}

	*c = UDPConfig{
		IPAddress:      raw.IPAddress,
		Port:           int(raw.Port),
		PixelCount:     int(raw.PixelCount),
		IncludeIndexes: raw.IncludeIndexes,
		DataPrefix:     raw.DataPrefix,
		DataPostfix:    raw.DataPostfix,
	}
	return nil
}
