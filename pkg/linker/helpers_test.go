package linker_test

import (
	"context"

	"github.com/arthur-debert/dotstow/pkg/conflicts"
	"github.com/arthur-debert/dotstow/pkg/linker"
	"github.com/arthur-debert/dotstow/pkg/testutil"
	"github.com/arthur-debert/dotstow/pkg/types"
)

func groupByName(name string) types.LinkGroup {
	for _, g := range testutil.StandardGroups() {
		if g.Name == name {
			return g
		}
	}
	panic("unknown group " + name)
}

func classifier(env *testutil.TestEnvironment) *conflicts.Classifier {
	return conflicts.New(env.FS, env.ManagedRoot, conflicts.ContainmentSubstring)
}

func nativeLinker(env *testutil.TestEnvironment) *linker.NativeLinker {
	return linker.NewNativeLinker(env.FS, env.Paths, classifier(env))
}

func verifier(env *testutil.TestEnvironment) *linker.Verifier {
	return linker.NewVerifier(env.FS, env.Paths, classifier(env))
}

// fakeLinker records calls and returns canned errors per group.
type fakeLinker struct {
	unavailable bool
	errs        map[string]error
	applied     []string
	removed     []string
}

func (f *fakeLinker) Name() string    { return "fake" }
func (f *fakeLinker) Available() bool { return !f.unavailable }

func (f *fakeLinker) Apply(_ context.Context, g types.LinkGroup) error {
	f.applied = append(f.applied, g.Name)
	return f.errs[g.Name]
}

func (f *fakeLinker) Remove(_ context.Context, g types.LinkGroup) error {
	f.removed = append(f.removed, g.Name)
	return f.errs[g.Name]
}

func linkerWithFS(env *testutil.TestEnvironment, fsys types.FS) *linker.NativeLinker {
	return linker.NewNativeLinker(fsys, env.Paths, conflicts.New(fsys, env.ManagedRoot, conflicts.ContainmentSubstring))
}
