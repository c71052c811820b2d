package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const conflictedRefs = `{"id":"first","title":"First","authors":[],"type":"book","source":{"type":"manual","id":""}}
<<<<<<< HEAD
{"id":"shared","title":"Shared","authors":["Ann Lee"],"type":"journal","abstract":"Abs","source":{"type":"manual","id":""}}
{"id":"mine","title":"Mine","authors":[],"type":"book","source":{"type":"manual","id":""}}
=======
{"id":"shared","title":"Shared","authors":["Ann Lee"],"type":"journal","year":"2020","source":{"type":"manual","id":""}}
{"id":"yours","title":"Yours","authors":[],"type":"book","source":{"type":"manual","id":""}}
>>>>>>> feature
{"id":"last","title":"Last","authors":[],"type":"book","source":{"type":"manual","id":""}}
`

func TestDocumentResolve(t *testing.T) {
	doc, err := ParseString(conflictedRefs)
	require.NoError(t, err)

	report := doc.Resolve(SideNone)

	var ids []string
	for _, r := range report.Refs {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []string{"first", "shared", "mine", "yours", "last"}, ids)

	assert.Equal(t, 1, report.Merged)
	assert.Equal(t, 1, report.OursOnly)
	assert.Equal(t, 1, report.TheirsOnly)
	assert.Equal(t, 5, report.Total)
	assert.Empty(t, report.Unresolved)

	shared := report.Refs[1]
	assert.Equal(t, "Abs", shared.Abstract)
	assert.Equal(t, "2020", shared.Year)
}

func TestDocumentResolve_Unresolved(t *testing.T) {
	content := `<<<<<<< HEAD
{"id":"a","title":"Title","authors":[],"type":"book","year":"2019","source":{"type":"manual","id":""}}
=======
{"id":"a","title":"Title","authors":[],"type":"book","year":"2020","source":{"type":"manual","id":""}}
>>>>>>> feature
`
	doc, err := ParseString(content)
	require.NoError(t, err)

	report := doc.Resolve(SideNone)
	require.Len(t, report.Unresolved, 1)
	c := report.Unresolved[0].Conflicts
	require.Len(t, c, 1)
	assert.Equal(t, "year", c[0].Field)

	report = doc.Resolve(SideTheirs)
	assert.Empty(t, report.Unresolved)
	require.NotEmpty(t, report.Refs)
	assert.Equal(t, "2020", report.Refs[0].Year)
}
