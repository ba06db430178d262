package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestPlainSummaryWritesToCommandWriter(t *testing.T) {
	viper.Set("info.input", writeFixture(t))
	viper.Set("info.log-level", "quiet")
	infoPlainSummary = true
	t.Cleanup(func() {
		viper.Reset()
		infoPlainSummary = false
		infoCmd.SetOut(nil)
	})

	var buf bytes.Buffer
	infoCmd.SetOut(&buf)

	if err := runInfo(infoCmd, nil); err != nil {
		t.Fatalf("runInfo failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Prefix: si") || !strings.Contains(out, "Calc mode: spins") {
		t.Fatalf("plain summary missing from command writer output: %q", out)
	}
}
