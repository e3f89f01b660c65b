package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Model string `env:"MODEL"`
}

type sample struct {
	Port    int           `env:"PORT"`
	Name    string        `env:"NAME,required"`
	Token   string        `env:"TOKEN" secret:"true"`
	Dirs    []string      `env:"DIRS" envSeparator:","`
	Timeout time.Duration `env:"TIMEOUT"`
	Debug   bool          `env:"DEBUG"`
	Note    string        `env:"NOTE"`
	Nested  inner
	skipped string
}

func TestMarshalEnv(t *testing.T) {
	cfg := &sample{
		Port:    5000,
		Name:    "protox",
		Token:   "gsk-secret",
		Dirs:    []string{"knowledge", "uploads"},
		Timeout: time.Minute,
		Note:    "two words",
		Nested:  inner{Model: "llama"},
		skipped: "x",
	}

	got, err := MarshalEnv(Options{}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "PORT=5000\nNAME=protox\nTOKEN=gsk-secret\nDIRS=knowledge,uploads\nTIMEOUT=1m0s\nNOTE=\"two words\"\nMODEL=llama\n", got)

	got, err = MarshalEnv(Options{Redact: true}, cfg)
	require.NoError(t, err)
	assert.Contains(t, got, "TOKEN=****\n")
	assert.NotContains(t, got, "gsk-secret")
}

func TestMarshalEnv_KeepZeroAndDedupe(t *testing.T) {
	type other struct {
		Port int    `env:"PORT"`
		Mode string `env:"MODE"`
	}

	got, err := MarshalEnv(Options{KeepZero: true, Redact: true}, &other{Port: 1}, other{Port: 2})
	require.NoError(t, err)
	assert.Equal(t, "PORT=1\nMODE=\"\"\n", got)
}

func TestMarshalEnv_Errors(t *testing.T) {
	var nilCfg *sample
	_, err := MarshalEnv(Options{}, nilCfg)
	assert.Error(t, err)

	_, err = MarshalEnv(Options{}, 42)
	assert.Error(t, err)

	got, err := MarshalEnv(Options{})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
