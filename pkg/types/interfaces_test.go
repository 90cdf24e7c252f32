package types_test

import (
	"testing"

	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestProbeResult_IsDangling(t *testing.T) {
	assert.True(t, types.ProbeResult{Kind: types.KindSymlink}.IsDangling())
	assert.False(t, types.ProbeResult{Kind: types.KindSymlink, TargetExists: true}.IsDangling())
	assert.False(t, types.ProbeResult{Kind: types.KindRegularFile}.IsDangling())
}

func TestProbeKind_String(t *testing.T) {
	assert.Equal(t, "absent", types.KindAbsent.String())
	assert.Equal(t, "file", types.KindRegularFile.String())
	assert.Equal(t, "directory", types.KindDirectory.String())
	assert.Equal(t, "symlink", types.KindSymlink.String())
	assert.Equal(t, "unknown", types.ProbeKind(42).String())
}

func TestConflictRecord_IsLink(t *testing.T) {
	assert.True(t, types.ConflictRecord{Kind: types.ConflictForeignLink}.IsLink())
	assert.True(t, types.ConflictRecord{Kind: types.ConflictDanglingDir}.IsLink())
	assert.False(t, types.ConflictRecord{Kind: types.ConflictRegular}.IsLink())
}

func TestConfirmFunc(t *testing.T) {
	var asked string
	c := types.ConfirmFunc(func(prompt string) (types.Decision, error) {
		asked = prompt
		return types.Yes, nil
	})

	d, err := c.Confirm("Proceed?")
	assert.NoError(t, err)
	assert.Equal(t, types.Yes, d)
	assert.Equal(t, "Proceed?", asked)
	assert.Equal(t, "yes", d.String())
	assert.Equal(t, "no", types.No.String())
}
