package diff

import "testing"

const samplePatch = `diff --git a/internal/api/server.go b/internal/api/server.go
--- a/internal/api/server.go
+++ b/internal/api/server.go
@@ -1,3 +1,4 @@
 package api

-func Old() {}
+func New() {}
+func Extra() {}
diff --git a/internal/api/client.go b/internal/api/client.go
--- a/internal/api/client.go
+++ b/internal/api/client.go
@@ -1,2 +1,3 @@
 package api
+var retries = 3

`

func TestParseStats(t *testing.T) {
	stats, err := ParseStats(samplePatch)
	if err != nil {
		t.Fatalf("ParseStats() error = %v", err)
	}

	wantFiles := []string{"internal/api/client.go", "internal/api/server.go"}
	if len(stats.Files) != len(wantFiles) {
		t.Fatalf("files = %v, want %v", stats.Files, wantFiles)
	}
	for i, f := range wantFiles {
		if stats.Files[i] != f {
			t.Errorf("files[%d] = %s, want %s", i, stats.Files[i], f)
		}
	}

	// 1 deletion + 2 additions in server.go, 1 addition in client.go.
	if stats.LinesChanged != 4 {
		t.Errorf("LinesChanged = %d, want 4 (gross)", stats.LinesChanged)
	}
}

func TestParseStatsEmptyPatch(t *testing.T) {
	stats, err := ParseStats("")
	if err != nil {
		t.Fatalf("ParseStats(\"\") error = %v", err)
	}
	if len(stats.Files) != 0 || stats.LinesChanged != 0 {
		t.Errorf("empty patch produced stats %+v", stats)
	}
}

func TestParseStatsMalformedPatch(t *testing.T) {
	if _, err := ParseStats("not a diff at all"); err == nil {
		t.Error("ParseStats() accepted malformed input")
	}
}
