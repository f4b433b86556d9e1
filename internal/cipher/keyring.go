package cipher

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformedConfig is returned when key material cannot be turned into a valid configuration.
var ErrMalformedConfig = errors.New("malformed cipher configuration")

// Keyring supplies named key tables and seeds to the catalog.
// Publisher key material is reverse-engineered per title and is not shipped
// with the catalog; names absent from the keyring resolve to empty tables.
type Keyring struct {
	Keys  map[string][]byte
	Seeds map[string]uint64
}

type keyFile struct {
	Keys  map[string]string `yaml:"keys"`
	Seeds map[string]uint64 `yaml:"seeds"`
}

// LoadKeyring reads a YAML key file of the form
//
//	keys:
//	  BH3ExpansionKey: "a1b2..."
//	seeds:
//	  GIInitSeed: 0x1234
func LoadKeyring(path string) (*Keyring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return ParseKeyring(data)
}

// ParseKeyring decodes key file content.
func ParseKeyring(data []byte) (*Keyring, error) {
	var kf keyFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}

	kr := &Keyring{
		Keys:  make(map[string][]byte, len(kf.Keys)),
		Seeds: make(map[string]uint64, len(kf.Seeds)),
	}
	for name, value := range kf.Keys {
		clean := strings.ReplaceAll(strings.TrimSpace(value), " ", "")
		b, err := hex.DecodeString(clean)
		if err != nil {
			return nil, fmt.Errorf("%w: key %s: %v", ErrMalformedConfig, name, err)
		}
		kr.Keys[name] = b
	}
	for name, seed := range kf.Seeds {
		kr.Seeds[name] = seed
	}
	return kr, nil
}

func (kr *Keyring) key(name string) []byte {
	if kr == nil || name == "" {
		return []byte{}
	}
	return orEmpty(kr.Keys[name])
}

func (kr *Keyring) seed(name string) uint64 {
	if kr == nil || name == "" {
		return 0
	}
	return kr.Seeds[name]
}
