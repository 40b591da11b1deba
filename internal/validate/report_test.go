// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/blamelint/blamelint/internal/history"
	"github.com/blamelint/blamelint/internal/ignorefile"
	"github.com/blamelint/blamelint/internal/testutil/golden"
)

func TestMain(m *testing.M) {
	// Deterministic report output regardless of the test terminal.
	color.NoColor = true
	os.Exit(m.Run())
}

func TestReport_WritePass(t *testing.T) {
	report := run(t, "# fix typo\n"+hashA+"\n", nil, Options{StrictComments: true})

	var buf strings.Builder
	report.Write(&buf, true)
	golden.Assert(t, "report_pass", buf.String())
}

func TestReport_WriteFail(t *testing.T) {
	raw := "bogus\n" + hashA + "\n"
	report := run(t, raw, oracleWith(), Options{CallGit: true, StrictComments: true})

	var buf strings.Builder
	report.Write(&buf, false)
	golden.Assert(t, "report_fail", buf.String())
}

func TestReport_WriteAllSectionsClear(t *testing.T) {
	oracle := history.NewOracle(&fakeSource{
		commits: map[string]history.Commit{
			hashA: {Hash: hashA, Message: "fix typo"},
		},
		byAuthor: map[string][]history.Commit{},
	})
	opts := Options{CallGit: true, StrictComments: true, StrictCommentsGit: true, PreCommitCI: true}
	report, err := Run(context.Background(), ignorefile.Parse("# fix typo\n"+hashA+"\n"), oracle, opts)
	require.NoError(t, err)
	require.True(t, report.OK())

	var buf strings.Builder
	report.Write(&buf, false)
	golden.Assert(t, "report_all_clear", buf.String())
}
