package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueUnmarshalShapes(t *testing.T) {
	var doc struct {
		S    Value `json:"s"`
		N    Value `json:"n"`
		B    Value `json:"b"`
		L    Value `json:"l"`
		M    Value `json:"m"`
		Null Value `json:"null"`
		Gone Value `json:"gone"`
	}
	raw := `{"s":"plain","n":12,"b":true,"l":["a",{"fr":"b","en":"B"}],"m":{"fr":"x","en":"y"},"null":null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, KindScalar, doc.S.Kind())
	assert.Equal(t, "plain", doc.S.String())
	assert.Equal(t, "12", doc.N.String())
	assert.Equal(t, "true", doc.B.String())
	assert.Equal(t, KindList, doc.L.Kind())
	assert.Equal(t, 2, doc.L.Len())
	assert.Equal(t, KindLocalized, doc.L.Elements()[1].Kind())
	assert.Equal(t, KindLocalized, doc.M.Kind())
	assert.True(t, doc.Null.IsAbsent())
	assert.True(t, doc.Gone.IsAbsent())
}

func TestValueMarshalKeepsShape(t *testing.T) {
	in := `{"fr":["un"],"en":["one"]}`
	var v Value
	require.NoError(t, json.Unmarshal([]byte(in), &v))
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestBundleDecode(t *testing.T) {
	var b Bundle
	require.NoError(t, b.Decode(SectionExperience, []byte(`[{"company":"A"},{"company":"B"}]`)))
	require.Len(t, b.Experience, 2)
	assert.Equal(t, "B", b.Experience[1].Company.String())

	require.NoError(t, b.Decode(SectionHero, []byte(`null`)))
	assert.Nil(t, b.Hero)

	require.NoError(t, b.Decode(SectionNavigation, []byte(`{"about":{"fr":"À propos","en":"About"}}`)))
	assert.Equal(t, "About", Text(b.Navigation["about"], English))

	err := b.Decode(SectionEducation, []byte(`{"items":"oops"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "education")

	require.Error(t, b.Decode(Section("blog"), []byte(`{}`)))
}

func TestEducationItemHasBadge(t *testing.T) {
	item := EducationItem{Badges: []string{"honors", "WES"}}
	assert.True(t, item.HasBadge(CredentialBadge))
	assert.False(t, EducationItem{Badges: []string{"wes"}}.HasBadge(CredentialBadge))
}
