package types

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReport_Failures(t *testing.T) {
	r := &Report{}
	assert.True(t, r.OK())

	r.AddFailures(
		Failure{Stage: StageClone, Path: "a.txt", Op: "copy", Err: errors.New("boom")},
		Failure{Stage: StageText, Path: "src/App.java", Op: "read", Err: errors.New("denied")},
		Failure{Stage: StageClone, Path: "b.txt", Op: "copy", Err: errors.New("boom")},
	)

	assert.False(t, r.OK())
	assert.Len(t, r.Failures, 3)

	clone := r.FailuresFor(StageClone)
	assert.Equal(t, []string{"a.txt", "b.txt"}, []string{clone[0].Path, clone[1].Path})
	assert.Empty(t, r.FailuresFor(StageRelocate))
}

func TestFailure_Error(t *testing.T) {
	f := Failure{Stage: StageDescriptor, Path: "pom.xml", Op: "write", Err: errors.New("read-only")}
	assert.Equal(t, "descriptor: write pom.xml: read-only", f.Error())
	assert.Equal(t, "read-only", f.Message())
	assert.Equal(t, "", Failure{}.Message())
}

func TestRenameConfig_MissingFields(t *testing.T) {
	full := RenameConfig{
		OldGroup: "com.zygh", OldArtifact: "project-template", OldPackage: "com.zygh.project",
		NewGroup: "com.newgroup", NewArtifact: "new-artifact", NewPackage: "com.newgroup",
	}
	assert.Empty(t, full.MissingFields())

	partial := full
	partial.NewPackage = "  "
	partial.OldGroup = ""
	assert.Equal(t, []string{"old group", "new package"}, partial.MissingFields())
}

func TestPackageDir(t *testing.T) {
	assert.Equal(t, filepath.Join("com", "zygh", "project"), PackageDir("com.zygh.project"))
	assert.Equal(t, "single", PackageDir("single"))
}

type fakeInfo struct {
	name  string
	isDir bool
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return 0 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.isDir }
func (f fakeInfo) Sys() interface{}   { return nil }

type nameTrigger string

func (n nameTrigger) Name() string        { return "name" }
func (n nameTrigger) Description() string { return "" }
func (n nameTrigger) Priority() int       { return 0 }
func (n nameTrigger) Match(path string, info fs.FileInfo) (bool, map[string]interface{}) {
	return info.Name() == string(n), nil
}

func TestAnyMatch(t *testing.T) {
	triggers := []Trigger{nameTrigger("pom.xml"), nameTrigger("build.xml")}

	assert.True(t, AnyMatch(triggers, "x/pom.xml", fakeInfo{name: "pom.xml"}))
	assert.True(t, AnyMatch(triggers, "build.xml", fakeInfo{name: "build.xml"}))
	assert.False(t, AnyMatch(triggers, "App.java", fakeInfo{name: "App.java"}))
	assert.False(t, AnyMatch(nil, "pom.xml", fakeInfo{name: "pom.xml"}))
}
