package lang

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/l5x/dom"
)

const target = "en-US"

func newTag() dom.Element {
	tag := dom.New("Tag", dom.Attr{Name: "Name", Value: "tag_name"}, dom.Attr{Name: "DataType", Value: "DINT"}).Root()
	tag.Append("Data", dom.Attr{Name: "Format", Value: "Decorated"})
	return tag
}

// addDescription builds a description the way an export would.
func addDescription(tag dom.Element, text, language string) {
	desc, ok := tag.Child("Description")
	if !ok {
		desc = tag.Append("Description")
	}
	parent := desc
	if language != "" {
		parent = desc.Append("LocalizedDescription", dom.Attr{Name: LangAttr, Value: language})
	}
	parent.Append(dom.CDATA).SetText(text)
}

func addComment(tag dom.Element, operand, text, language string) {
	comments, ok := tag.Child("Comments")
	if !ok {
		comments = tag.Append("Comments")
	}
	comment, ok := comments.FindChild(func(c dom.Element) bool {
		v, _ := c.Attr("Operand")
		return v == operand
	})
	if !ok {
		comment = comments.Append("Comment", dom.Attr{Name: "Operand", Value: operand})
	}
	parent := comment
	if language != "" {
		parent = comment.Append("LocalizedComment", dom.Attr{Name: LangAttr, Value: language})
	}
	parent.Append(dom.CDATA).SetText(text)
}

func cdata(t *testing.T, parent dom.Element, want string) {
	t.Helper()
	kids := parent.Children()
	if len(kids) != 1 || kids[0].Name() != dom.CDATA {
		t.Fatalf("%s children: %v", parent, kids)
	}
	if got := kids[0].Text(); got != want {
		t.Errorf("text %q, want %q", got, want)
	}
}

func localized(t *testing.T, parent dom.Element, name, language string) dom.Element {
	t.Helper()
	var res []dom.Element
	for _, c := range parent.ChildrenNamed(name) {
		if v, _ := c.Attr(LangAttr); v == language {
			res = append(res, c)
		}
	}
	if len(res) != 1 {
		t.Fatalf("%d %s for %s", len(res), name, language)
	}
	return res[0]
}

func TestDescriptionRead(t *testing.T) {
	tests := []struct {
		name   string
		ctx    Context
		add    [][2]string
		want   string
		wantOK bool
	}{
		{"single", Single(), [][2]string{{"foo", ""}}, "foo", true},
		{"multi", Multi(target), [][2]string{{"pass", target}, {"fail", "es-AR"}}, "pass", true},
		{"single none", Single(), nil, "", false},
		{"multi none", Multi(target), nil, "", false},
		{"multi none foreign", Multi(target), [][2]string{{"other", "es-AR"}}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := newTag()
			for _, a := range tt.add {
				addDescription(tag, a[0], a[1])
			}
			got, ok := Description(tag).Get(tt.ctx)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("got %q %v, want %q %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDescriptionSingleWrite(t *testing.T) {
	tag := newTag()
	d := Description(tag)
	d.Set(Single(), "new")
	descs := tag.ChildrenNamed("Description")
	if len(descs) != 1 {
		t.Fatalf("%d descriptions", len(descs))
	}
	cdata(t, descs[0], "new")
	if tag.ChildAt(0).Name() != "Description" {
		t.Errorf("description is not the first child")
	}
	d.Set(Single(), "newer")
	cdata(t, descs[0], "newer")
	d.Delete(Single())
	if _, ok := tag.Child("Description"); ok {
		t.Errorf("description not removed")
	}
	if _, ok := d.Get(Single()); ok {
		t.Errorf("deleted description visible")
	}
}

func TestDescriptionMultiWrite(t *testing.T) {
	tag := newTag()
	addDescription(tag, "other", "es-AR")
	d := Description(tag)
	d.Set(Multi(target), "new")
	desc, _ := tag.Child("Description")
	cdata(t, localized(t, desc, "LocalizedDescription", target), "new")
	cdata(t, localized(t, desc, "LocalizedDescription", "es-AR"), "other")

	d.Set(Multi(target), "overwrite")
	cdata(t, localized(t, desc, "LocalizedDescription", target), "overwrite")

	d.Delete(Multi(target))
	if len(desc.ChildrenNamed("LocalizedDescription")) != 1 {
		t.Fatalf("wrong localized descriptions left")
	}
	cdata(t, localized(t, desc, "LocalizedDescription", "es-AR"), "other")

	Description(tag).Delete(Multi("es-AR"))
	if _, ok := tag.Child("Description"); ok {
		t.Errorf("empty description container kept")
	}
}

func TestDescriptionAfterConsumeInfo(t *testing.T) {
	tag := newTag()
	tag.Insert(0, "ConsumeInfo", dom.Attr{Name: "Producer", Value: "p"})
	Description(tag).Set(Single(), "d")
	got := []string{tag.ChildAt(0).Name(), tag.ChildAt(1).Name()}
	if diff := cmp.Diff([]string{"ConsumeInfo", "Description"}, got); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestCommentRead(t *testing.T) {
	tag := newTag()
	addComment(tag, ".0", "pass", target)
	addComment(tag, ".0", "fail", "zh-CN")
	got, ok := Comment(tag, ".0").Get(Multi(target))
	if !ok || got != "pass" {
		t.Errorf("got %q %v", got, ok)
	}
	if _, ok := Comment(tag, ".1").Get(Multi(target)); ok {
		t.Errorf("found comment for missing operand")
	}
	if _, ok := Comment(tag, ".0").Get(Multi("es-AR")); ok {
		t.Errorf("found comment for missing language")
	}
}

func TestCommentOperandFold(t *testing.T) {
	tag := newTag()
	addComment(tag, ".Pre", "x", "")
	if got, ok := Comment(tag, ".PRE").Get(Single()); !ok || got != "x" {
		t.Errorf("got %q %v", got, ok)
	}
}

func TestCommentSingle(t *testing.T) {
	tag := newTag()
	c0 := Comment(tag, ".0")
	c0.Set(Single(), "new")
	comments, ok := tag.Child("Comments")
	if !ok {
		t.Fatal("no comments")
	}
	cdata(t, comments.ChildAt(0), "new")
	c0.Set(Single(), "newer")
	cdata(t, comments.ChildAt(0), "newer")

	addComment(tag, ".1", "bar", "")
	c0.Delete(Single())
	if comments.ChildCount() != 1 {
		t.Fatalf("comments left %v", comments.Children())
	}
	if got, _ := Comment(tag, ".1").Get(Single()); got != "bar" {
		t.Errorf("other operand changed to %q", got)
	}
	Comment(tag, ".1").Delete(Single())
	if _, ok := tag.Child("Comments"); ok {
		t.Errorf("empty comments container kept")
	}
}

func TestCommentMulti(t *testing.T) {
	tag := newTag()
	addComment(tag, ".0", "bar", "zh-CN")
	c0 := Comment(tag, ".0")
	c0.Set(Multi(target), "new")
	comments, _ := tag.Child("Comments")
	comment := comments.ChildAt(0)
	cdata(t, localized(t, comment, "LocalizedComment", target), "new")
	cdata(t, localized(t, comment, "LocalizedComment", "zh-CN"), "bar")

	c0.Delete(Multi(target))
	cdata(t, localized(t, comment, "LocalizedComment", "zh-CN"), "bar")
	if len(comment.ChildrenNamed("LocalizedComment")) != 1 {
		t.Errorf("target language comment not removed")
	}

	c0.Delete(Multi("zh-CN"))
	if _, ok := tag.Child("Comments"); ok {
		t.Errorf("empty comments container kept")
	}
}

func TestCommentPosition(t *testing.T) {
	tag := newTag()
	Description(tag).Set(Single(), "d")
	Comment(tag, ".0").Set(Single(), "c")
	var got []string
	for _, c := range tag.Children() {
		got = append(got, c.Name())
	}
	if diff := cmp.Diff([]string{"Description", "Comments", "Data"}, got); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}
