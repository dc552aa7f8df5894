package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type Run struct {
	ID         string    `json:"id"`
	Flow       string    `json:"flow"`
	Source     string    `json:"source"`
	DryRun     bool      `json:"dry_run"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
}

type Outcome struct {
	Batch     int    `json:"batch"`
	BulkID    string `json:"bulk_id"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Succeeded bool   `json:"succeeded"`
	Detail    string `json:"detail"`
	ScimType  string `json:"scim_type"`
}

type E2EClient struct {
	t      *testing.T
	dir    string
	config string
}

func NewE2EClient(t *testing.T) *E2EClient {
	c := &E2EClient{t: t, dir: t.TempDir()}

	doc := fmt.Sprintf(`tenant:
  base_url: %s
  scim_path: %s
auth:
  token_path: /oauth2/token
  client_id: %s
  client_secret: %s
import:
  csv_file: users.csv
  batch_size: 2
  attribute_rules:
    - name: department
      type: from_csv
      csv_column: department
      extension_urn: urn:ietf:params:scim:schemas:extension:ibm:2.0:User
      custom_container: customAttributes
logging:
  level: debug
audit:
  dsn: %s
`, testEnv.TenantServer.URL, scimPath, testEnv.ClientID, testEnv.ClientSecret, testEnv.DSN)

	c.config = c.WriteFile("application.yaml", doc)
	return c
}

func (c *E2EClient) WriteFile(name, content string) string {
	path := filepath.Join(c.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		c.t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// Users writes a CSV of n fresh users plus one row without a username.
func (c *E2EClient) Users(n int) (string, []string) {
	names := make([]string, 0, n)

	var b strings.Builder
	b.WriteString("preferred_username,email,given_name,family_name,externalId,department\n")
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("e2e-%s", uuid.NewString()[:8])
		names = append(names, name)
		fmt.Fprintf(&b, "%s,%s@example.com,Given%d,Family%d,ext-%s,Engineering\n", name, name, i, i, name)
	}
	b.WriteString(",nobody@example.com,No,Body,,\n")

	return c.WriteFile(fmt.Sprintf("users-%s.csv", uuid.NewString()[:8]), b.String()), names
}

func (c *E2EClient) Run(args ...string) (int, string, string) {
	args = append(args, "--config", c.config)

	cmd := exec.Command(testEnv.BinPath, args...)
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), stdout.String(), stderr.String()
	}
	if err != nil {
		c.t.Fatalf("failed to run %v: %v", args, err)
	}

	return 0, stdout.String(), stderr.String()
}

func (c *E2EClient) MustRun(args ...string) string {
	code, stdout, stderr := c.Run(args...)
	if code != 0 {
		c.t.Fatalf("%v exited with %d\nstdout: %s\nstderr: %s", args, code, stdout, stderr)
	}
	return stdout
}

// LatestRun returns the newest journaled run of flow read from source.
func (c *E2EClient) LatestRun(flow, source string) Run {
	var runs []Run
	if err := json.Unmarshal([]byte(c.MustRun("report", "--flow", flow, "--size", "50")), &runs); err != nil {
		c.t.Fatalf("invalid report output: %v", err)
	}

	for _, r := range runs {
		if r.Source == source {
			return r
		}
	}

	c.t.Fatalf("no %s run found for %s", flow, source)
	return Run{}
}

func (c *E2EClient) Outcomes(runID string) []Outcome {
	var doc struct {
		Run      Run       `json:"run"`
		Outcomes []Outcome `json:"outcomes"`
	}
	if err := json.Unmarshal([]byte(c.MustRun("report", runID)), &doc); err != nil {
		c.t.Fatalf("invalid report output: %v", err)
	}
	if doc.Run.ID != runID {
		c.t.Fatalf("expected run %s, got %s", runID, doc.Run.ID)
	}
	return doc.Outcomes
}

func TestImportLifecycle(t *testing.T) {
	c := NewE2EClient(t)
	csvPath, names := c.Users(3)

	c.MustRun("import", "--csv", csvPath)

	for _, name := range names {
		if !testEnv.Tenant.HasUser(name) {
			t.Fatalf("expected user %s to be created", name)
		}
	}

	run := c.LatestRun("import", csvPath)
	if run.Succeeded != 3 || run.Failed != 0 || run.Skipped != 1 {
		t.Fatalf("unexpected first run counters: %+v", run)
	}
	if run.FinishedAt.IsZero() {
		t.Fatalf("expected finished run: %+v", run)
	}

	outcomes := c.Outcomes(run.ID)
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if outcomes[2].Batch != 2 || outcomes[2].BulkID != "create-user-0001" {
		t.Fatalf("expected the second batch to restart bulkIds, got %+v", outcomes[2])
	}

	// Importing the same users again fails per operation, the command still succeeds
	c.MustRun("import", "--csv", csvPath, "--batch-size", "5")

	var rerun Run
	var rerunOutcomes []Outcome
	var runs []Run
	if err := json.Unmarshal([]byte(c.MustRun("report", "--flow", "import", "--size", "50")), &runs); err != nil {
		t.Fatalf("invalid report output: %v", err)
	}
	for _, r := range runs {
		if r.Source == csvPath && r.ID != run.ID {
			rerun = r
			break
		}
	}
	if rerun.ID == "" {
		t.Fatal("second import run not journaled")
	}
	if rerun.Succeeded != 0 || rerun.Failed != 3 {
		t.Fatalf("unexpected second run counters: %+v", rerun)
	}

	rerunOutcomes = c.Outcomes(rerun.ID)
	for _, o := range rerunOutcomes {
		if o.Succeeded || o.Status != 409 || o.ScimType != "uniqueness" {
			t.Fatalf("expected uniqueness conflict, got %+v", o)
		}
	}
}

func TestDeleteLifecycle(t *testing.T) {
	c := NewE2EClient(t)
	csvPath, names := c.Users(2)

	c.MustRun("import", "--csv", csvPath)
	requests := testEnv.Tenant.BulkRequests()

	// delete.dry_run defaults to true
	c.MustRun("delete", "--csv", csvPath)

	if got := testEnv.Tenant.BulkRequests(); got != requests {
		t.Fatalf("dry run submitted %d bulk requests", got-requests)
	}
	for _, name := range names {
		if !testEnv.Tenant.HasUser(name) {
			t.Fatalf("dry run deleted %s", name)
		}
	}

	dryRun := c.LatestRun("delete", csvPath)
	if !dryRun.DryRun || dryRun.Succeeded != 0 || dryRun.Failed != 0 || dryRun.Skipped != 1 {
		t.Fatalf("unexpected dry run counters: %+v", dryRun)
	}

	c.MustRun("delete", "--csv", csvPath, "--dry-run=false")

	for _, name := range names {
		if testEnv.Tenant.HasUser(name) {
			t.Fatalf("expected %s to be deleted", name)
		}
	}

	live := c.LatestRun("delete", csvPath)
	if live.DryRun || live.Succeeded != 2 {
		t.Fatalf("unexpected delete run counters: %+v", live)
	}

	for _, o := range c.Outcomes(live.ID) {
		if o.Method != "DELETE" || o.Status != 204 || !strings.HasPrefix(o.Path, "/Users/") {
			t.Fatalf("unexpected delete outcome %+v", o)
		}
	}

	// Nothing is left to resolve
	c.MustRun("delete", "--csv", csvPath, "--dry-run=false")

	empty := c.LatestRun("delete", csvPath)
	if empty.Succeeded != 0 || empty.Skipped != 3 {
		t.Fatalf("unexpected counters for an empty delete: %+v", empty)
	}
}

func TestMissingConfigurationFails(t *testing.T) {
	cmd := exec.Command(testEnv.BinPath, "import", "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Import failed") {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
}

func TestInvalidCredentialsFail(t *testing.T) {
	c := NewE2EClient(t)
	csvPath, _ := c.Users(1)

	cmd := exec.Command(testEnv.BinPath, "import", "--csv", csvPath, "--config", c.config)
	cmd.Env = append(os.Environ(), "SCIM_CLIENT_SECRET=wrong")

	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
}
