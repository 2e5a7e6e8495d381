package session

import (
	"fmt"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Delays are cosmetic pauses in milliseconds. Zero means act immediately.
type Delays struct {
	AIThink      uint32 `yaml:"aiThink"`
	ResolveTrick uint32 `yaml:"resolveTrick"`
}

var DefaultDelays = Delays{
	AIThink:      800,
	ResolveTrick: 1000,
}

func ParseDelayConfig(delaysFile string) (Delays, error) {
	bytes, err := ioutil.ReadFile(delaysFile)
	if err != nil {
		return Delays{}, errors.Wrap(err, fmt.Sprintf("Error reading delay config file [%s]", delaysFile))
	}

	var data Delays
	err = yaml.Unmarshal(bytes, &data)
	if err != nil {
		return Delays{}, errors.Wrap(err, fmt.Sprintf("Error parsing delays YAML file [%s]", delaysFile))
	}

	return data, nil
}

func (d Delays) aiThink() time.Duration {
	return time.Duration(d.AIThink) * time.Millisecond
}

func (d Delays) resolveTrick() time.Duration {
	return time.Duration(d.ResolveTrick) * time.Millisecond
}
