package format_test

import (
	"testing"

	"github.com/begoniahe/zero/internal/format"
	"github.com/begoniahe/zero/internal/pipeline"
	"github.com/begoniahe/zero/internal/testutil"
)

func TestFormatGoldenCases(t *testing.T) {
	cases, err := testutil.FormatGoldenCases()
	if err != nil {
		t.Fatalf("FormatGoldenCases: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no golden cases found under testdata/format")
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			src := testutil.ReadFile(t, tc.InputPath)
			want := string(testutil.ReadFile(t, tc.ExpectedPath))

			res := pipeline.Run(src, tc.Name+".zero", "en_US")
			if res.Engine.HasErrors() {
				t.Fatalf("unexpected parse errors: %v", res.Engine.Diagnostics())
			}

			got := format.Format(res.Root, format.DefaultOptions())
			if got != want {
				t.Errorf("formatted output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
			}
		})
	}
}

// TestFormatIdempotent verifies that formatting already-formatted output
// produces the same text, a property the formatter leans on to avoid
// oscillating between two styles on repeated runs.
func TestFormatIdempotent(t *testing.T) {
	cases, err := testutil.FormatGoldenCases()
	if err != nil {
		t.Fatalf("FormatGoldenCases: %v", err)
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			want := string(testutil.ReadFile(t, tc.ExpectedPath))

			res := pipeline.Run([]byte(want), tc.Name+".zero", "en_US")
			if res.Engine.HasErrors() {
				t.Fatalf("unexpected parse errors reformatting expected output: %v", res.Engine.Diagnostics())
			}

			got := format.Format(res.Root, format.DefaultOptions())
			if got != want {
				t.Errorf("formatting already-formatted output changed it\n--- got ---\n%s\n--- want ---\n%s", got, want)
			}
		})
	}
}
