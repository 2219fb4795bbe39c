package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/adrianmross/mpctl/pkg/multipass"
	"github.com/adrianmross/mpctl/pkg/runner"
	"gopkg.in/yaml.v3"
)

const listFixture = `{"list": [
	{"name":"web","state":"Running","ipv4":["10.0.0.5","10.0.1.5"],"release":"Ubuntu 24.04 LTS"},
	{"name":"db","state":"Stopped","ipv4":[],"release":"Ubuntu 22.04 LTS"},
	{"name":"old","state":"Deleted"}
]}`

func TestListOutputs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		assert    func(t *testing.T, got string)
		assertErr string
	}{
		{
			name: "default human",
			args: []string{},
			assert: func(t *testing.T, got string) {
				if !strings.Contains(got, "* web (state=Running ipv4=10.0.0.5 release=Ubuntu 24.04 LTS)") {
					t.Fatalf("expected running marker for web, got %q", got)
				}
				if !strings.Contains(got, "  db (state=Stopped ipv4=- release=Ubuntu 22.04 LTS)") {
					t.Fatalf("expected db line, got %q", got)
				}
			},
		},
		{
			name: "json",
			args: []string{"-o", "json"},
			assert: func(t *testing.T, got string) {
				var instances []multipass.Instance
				if err := json.Unmarshal([]byte(got), &instances); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(instances) != 3 || instances[0].Name != "web" || instances[0].IPv4[1] != "10.0.1.5" {
					t.Fatalf("unexpected instances %+v", instances)
				}
			},
		},
		{
			name: "yaml",
			args: []string{"-o", "yaml"},
			assert: func(t *testing.T, got string) {
				var instances []multipass.Instance
				if err := yaml.Unmarshal([]byte(got), &instances); err != nil {
					t.Fatalf("invalid yaml: %v", err)
				}
				if len(instances) != 3 || instances[2].State != "Deleted" {
					t.Fatalf("unexpected instances %+v", instances)
				}
			},
		},
		{
			name: "plain",
			args: []string{"-o", "plain"},
			assert: func(t *testing.T, got string) {
				if !strings.Contains(got, "name=web state=Running ipv4=10.0.0.5,10.0.1.5 release=Ubuntu 24.04 LTS") {
					t.Fatalf("unexpected plain output %q", got)
				}
			},
		},
		{
			name: "state filter",
			args: []string{"-o", "plain", "--state", "stopped"},
			assert: func(t *testing.T, got string) {
				if strings.TrimSpace(got) != "name=db state=Stopped ipv4= release=Ubuntu 22.04 LTS" {
					t.Fatalf("expected only db, got %q", got)
				}
			},
		},
		{
			name: "state filter other",
			args: []string{"-o", "plain", "--state", "other"},
			assert: func(t *testing.T, got string) {
				if !strings.HasPrefix(got, "name=old state=Deleted") || strings.Count(got, "\n") != 1 {
					t.Fatalf("expected only old, got %q", got)
				}
			},
		},
		{
			name: "csv",
			args: []string{"-o", "csv"},
			assert: func(t *testing.T, got string) {
				want := "Name,State,IPv4\nweb,Running,10.0.0.5\ndb,Stopped,\n"
				if got != want {
					t.Fatalf("want %q, got %q", want, got)
				}
			},
		},
		{
			name: "names",
			args: []string{"-o", "names"},
			assert: func(t *testing.T, got string) {
				if got != "web\ndb\nold\n" {
					t.Fatalf("unexpected names %q", got)
				}
			},
		},
		{
			name: "running names",
			args: []string{"-o", "names", "--state", "running"},
			assert: func(t *testing.T, got string) {
				if got != "web\n" {
					t.Fatalf("unexpected names %q", got)
				}
			},
		},
		{
			name: "stopped names",
			args: []string{"-o", "names", "--state", "Stopped"},
			assert: func(t *testing.T, got string) {
				if got != "db\n" {
					t.Fatalf("unexpected names %q", got)
				}
			},
		},
		{
			name:      "unknown state",
			args:      []string{"--state", "rebooting"},
			assertErr: "unknown state: rebooting",
		},
		{
			name:      "unsupported",
			args:      []string{"-o", "xml"},
			assertErr: "unsupported output format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := runner.NewFake().
				On(listFixture, "list", "--format", "json").
				On("Name,State,IPv4\nweb,Running,10.0.0.5\ndb,Stopped", "list", "--format", "csv")
			stubClient(t, fake)

			got, err := run(t, newListCmd(), tt.args...)
			if tt.assertErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.assertErr) {
					t.Fatalf("expected error %q, got %v", tt.assertErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			tt.assert(t, got)
		})
	}
}

func TestListMalformedOutputFails(t *testing.T) {
	stubClient(t, runner.NewFake().On(`{"items": []}`, "list", "--format", "json"))
	got, err := run(t, newListCmd(), "-o", "json")
	if err == nil {
		t.Fatalf("expected error, got output %q", got)
	}
	if got != "" {
		t.Fatalf("no partial output expected, got %q", got)
	}
}
