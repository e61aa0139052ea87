package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	type args struct {
		content string
	}

	type testCase struct {
		name     string
		args     args
		want     []Row
		wantErrs int
		wantErr  error
	}

	tests := []testCase{
		{
			name: "NativeSemicolon",
			args: args{content: "issue;role;estimation;pull_request\n12;dev;90;false\n13;qa;1h30m;true\n"},
			want: []Row{
				{Line: 2, IssueID: "12", Role: "DEV", Estimation: 90},
				{Line: 3, IssueID: "13", Role: "QA", Estimation: 90, PullRequest: true},
			},
		},
		{
			name: "NativeCommaWithPreamble",
			args: args{content: "Sprint 14 export\n\nrole,estimation,issue\nREV,30,#7\n"},
			want: []Row{
				{Line: 4, IssueID: "7", Role: "REV", Estimation: 30},
			},
		},
		{
			name: "GithubProjectHours",
			args: args{content: "Title,Number,Type,Role,Estimate\nFix login,41,Issue,DEV,2.5\nReview login,42,PullRequest,REV,\"0,5\"\n"},
			want: []Row{
				{Line: 2, IssueID: "41", Role: "DEV", Estimation: 150},
				{Line: 3, IssueID: "42", Role: "REV", Estimation: 30, PullRequest: true},
			},
		},
		{
			name: "MalformedRowsAreReported",
			args: args{content: "issue;role;estimation\n1;;10\n2;DEV;soon\n3;DEV;-5\n4;DEV;15\n;;\n"},
			want: []Row{
				{Line: 5, IssueID: "4", Role: "DEV", Estimation: 15},
			},
			wantErrs: 3,
		},
		{
			name:    "UnknownHeader",
			args:    args{content: "date;amount\n01-01-2024;10\n"},
			wantErr: ErrNoHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, rowErrs, err := NewParser().Parse(strings.NewReader(tt.args.content))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
			assert.Len(t, rowErrs, tt.wantErrs)
		})
	}
}

func TestUTF8Reader(t *testing.T) {
	type testCase struct {
		name        string
		input       []byte
		want        string
		wantCharset string
	}

	tests := []testCase{
		{
			name:        "UTF8Passthrough",
			input:       []byte("issue;role\n1;Dezvoltare ușoară\n"),
			want:        "issue;role\n1;Dezvoltare ușoară\n",
			wantCharset: "UTF-8",
		},
		{
			name:        "UTF8BOM",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, []byte("issue;role\n")...),
			want:        "issue;role\n",
			wantCharset: "UTF-8",
		},
		{
			// "ș" straddles the end of the sniffed prefix.
			name:        "UTF8RuneAcrossSniffBoundary",
			input:       []byte(strings.Repeat("a", sniffSize-1) + "ș\n"),
			want:        strings.Repeat("a", sniffSize-1) + "ș\n",
			wantCharset: "UTF-8",
		},
		{
			// "Descrição" in Windows-1252: ç = 0xE7, ã = 0xE3.
			name:  "Latin1",
			input: []byte{'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';', 'x', '\n'},
			want:  "Descrição;x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := utf8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			var got bytes.Buffer

			_, err = got.ReadFrom(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}
		})
	}
}
