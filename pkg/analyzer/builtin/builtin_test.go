package builtin_test

import (
	"testing"

	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	_ "github.com/suzuki-shunsuke/anrun/pkg/analyzer/builtin"
)

func TestRegistered(t *testing.T) {
	t.Parallel()
	descriptors := analyzer.Registered()
	if len(descriptors) == 0 {
		t.Fatal("importing the package must register the built-in analyzers")
	}
	names := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			t.Errorf("the built-in analyzer %s must be valid: %v", d.Name(), err)
		}
		names[d.Name()] = struct{}{}
	}
	for _, name := range []string{"printf", "structtag", "unreachable"} {
		if _, ok := names[name]; !ok {
			t.Errorf("the built-in analyzer %s must be registered", name)
		}
	}
}
