package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	mdwlog "github.com/msto63/khamseena/foundation/core/log"
	"github.com/msto63/khamseena/foundation/khamseena"
	"gopkg.in/yaml.v3"
)

const sample = `recipe add(count a, count b) {
    deliver a + b;
}
count x = add(1, 2);
serve x;
`

func compile(t *testing.T, source string) (*khamseena.Result, error) {
	t.Helper()
	engine := khamseena.NewEngine(khamseena.Options{Logger: mdwlog.Discard()})
	return engine.Compile(source)
}

var all = Options{ShowTokens: true, ShowAST: true, ShowScopes: true}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{" YAML ", FormatYAML, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuild_Success(t *testing.T) {
	result, err := compile(t, sample)
	rep := Build("sample.kh", result, err, all)

	if !rep.Success || rep.Stage != "complete" || rep.Fatal != "" {
		t.Fatalf("Build() = success %v stage %q fatal %q", rep.Success, rep.Stage, rep.Fatal)
	}
	if len(rep.Tokens) != len(result.Tokens) {
		t.Errorf("tokens = %d, want %d", len(rep.Tokens), len(result.Tokens))
	}
	if first := rep.Tokens[0]; first.Type != "RECIPE" || first.Value != "recipe" || first.Position != "1:1" {
		t.Errorf("first token = %+v", first)
	}
	if !strings.HasPrefix(rep.AST, "Program") {
		t.Errorf("AST = %q", rep.AST)
	}

	names := make([]string, len(rep.Scopes))
	for i, s := range rep.Scopes {
		names[i] = s.Name
	}
	if got := strings.Join(names, ","); got != "global,function_add,block_1" {
		t.Errorf("scopes = %s", got)
	}
	if rep.Scopes[1].Parent != "global" || rep.Scopes[1].Depth != 1 {
		t.Errorf("function scope = %+v", rep.Scopes[1])
	}
	if len(rep.Scopes[0].Symbols) != 2 || rep.Scopes[0].Symbols[0].Kind != "function" {
		t.Errorf("global symbols = %+v", rep.Scopes[0].Symbols)
	}
}

func TestBuild_OptionalSections(t *testing.T) {
	result, err := compile(t, sample)
	rep := Build("sample.kh", result, err, Options{})

	if rep.Tokens != nil || rep.AST != "" || rep.Scopes != nil {
		t.Errorf("optional sections should be empty: %+v", rep)
	}
}

func TestBuild_Failures(t *testing.T) {
	result, err := compile(t, "count x = 1;\ncount x = y;\ntaste (x) { }\n")
	rep := Build("bad.kh", result, err, Options{})

	if rep.Success {
		t.Fatal("expected failure")
	}
	if len(rep.Errors) != 1 || rep.Errors[0].Line != 2 {
		t.Errorf("errors = %v", rep.Errors)
	}
	if len(rep.Warnings) != 1 {
		t.Errorf("warnings = %v", rep.Warnings)
	}

	result, err = compile(t, "count x = @;")
	rep = Build("lex.kh", result, err, all)
	if rep.Success || rep.Stage != "lexical" || rep.Fatal == "" {
		t.Errorf("lexical failure = %+v", rep)
	}
	if rep.AST != "" || rep.Scopes != nil {
		t.Error("no AST or scopes after a lexical error")
	}
}

func TestWrite_Text(t *testing.T) {
	result, err := compile(t, "count x = 1;\nserve y;\n")
	rep := Build("text.kh", result, err, all)

	var buf bytes.Buffer
	if err := Write(&buf, rep, FormatText); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"KHAMSEENA SCANNER - TOKEN OUTPUT",
		"TOKEN TYPE",
		"Total Tokens: 9",
		"ABSTRACT SYNTAX TREE",
		"SEMANTIC ERRORS (1)",
		"2:7: undefined variable 'y'",
		"SYMBOL TABLE",
		"Scope: global",
		"text.kh: FAILED (stage complete, 0 parse errors, 1 errors, 0 warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("text written to a buffer should not contain escape sequences")
	}
}

func TestWrite_Structured(t *testing.T) {
	result, err := compile(t, sample)
	rep := Build("sample.kh", result, err, Options{ShowScopes: true})
	rep.RunID = "run-1"

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, rep, FormatJSON); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		var decoded map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded["file"] != "sample.kh" || decoded["run_id"] != "run-1" || decoded["success"] != true {
			t.Errorf("decoded = %v", decoded)
		}
		if _, ok := decoded["tokens"]; ok {
			t.Error("empty tokens should be omitted")
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, rep, FormatYAML); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		var decoded Report
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid YAML: %v", err)
		}
		if decoded.File != "sample.kh" || decoded.Stage != "complete" || len(decoded.Scopes) != 3 {
			t.Errorf("decoded = %+v", decoded)
		}
		if !strings.Contains(buf.String(), "\n  - name: global\n") {
			t.Errorf("expected two space indentation:\n%s", buf.String())
		}
	})

	if err := Write(&bytes.Buffer{}, rep, Format("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestBuild_PartialPipeline(t *testing.T) {
	engine := khamseena.NewEngine(khamseena.Options{Logger: mdwlog.Discard()})
	tokens, err := engine.Tokenize("serve y;")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	result := &khamseena.Result{Tokens: tokens, Stage: khamseena.StageLexical}

	rep := Build("partial.kh", result, nil, Options{ShowTokens: true})
	if !rep.Success || len(rep.Tokens) != 4 {
		t.Errorf("tokenize report = %+v", rep)
	}
}

func TestWrite_TextTruncatesLongTokens(t *testing.T) {
	long := `"` + strings.Repeat("x", 50) + `"`
	result, err := compile(t, "serve "+long+";")
	rep := Build("long.kh", result, err, Options{ShowTokens: true})

	var buf bytes.Buffer
	if err := Write(&buf, rep, FormatText); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, long) {
		t.Errorf("token table should cut the value:\n%s", out)
	}
	if !strings.Contains(out, `"`+strings.Repeat("x", 36)+"...") {
		t.Errorf("token table missing the cut value:\n%s", out)
	}
	if rep.Tokens[1].Value != long {
		t.Errorf("report token value = %q, want it unchanged", rep.Tokens[1].Value)
	}
}
