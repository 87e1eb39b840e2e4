package sitegen

import (
	"reflect"
	"strings"
	"testing"

	"sitegen_server/internal/markup"
	"sitegen_server/internal/types"
)

func resultWith(css, js string, pages ...string) *GenerationResult {
	res := &GenerationResult{
		Code:   "<html><body>index</body></html>",
		Pages:  make(map[string]*markup.Document),
		Assets: Extraction{CSS: css, JS: js},
	}
	for _, name := range pages {
		res.Worklist = append(res.Worklist, types.PageDescriptor{Filename: name, Title: name, NavText: name})
		res.Pages[name] = markup.Parse("<p>" + name + "</p>")
	}
	return res
}

func writeByName(plan MergePlan, name string) (types.FileRecord, bool) {
	for _, f := range plan.Writes {
		if f.Filename == name {
			return f, true
		}
	}
	return types.FileRecord{}, false
}

func TestPlanMergeNewProject(t *testing.T) {
	uploads := AcceptUploads([]types.Upload{{Filename: "logo.png", Data: []byte{1}}}, 3)
	plan := PlanMerge(MergeInput{
		Mode:    ModeNewProject,
		Result:  resultWith("body{}", "run();", "about.html", "contact.html"),
		Uploads: uploads,
	})

	want := []string{"index.html", "about.html", "contact.html", "styles.css", "scripts.js", "logo.png"}
	if !reflect.DeepEqual(plan.Manifest, want) {
		t.Errorf("manifest = %v, want %v", plan.Manifest, want)
	}
	if len(plan.Deletes) != 0 {
		t.Errorf("new project should delete nothing, got %v", plan.Deletes)
	}
	if logo, _ := writeByName(plan, "logo.png"); !logo.IsBinary() {
		t.Error("upload should be written as binary")
	}
}

func TestPlanMergeNewProjectWithoutAssets(t *testing.T) {
	plan := PlanMerge(MergeInput{Mode: ModeNewProject, Result: resultWith("", "")})
	if !reflect.DeepEqual(plan.Manifest, []string{"index.html"}) {
		t.Errorf("unexpected manifest %v", plan.Manifest)
	}
}

func TestPlanMergeAppendsStylesAndScripts(t *testing.T) {
	prior := []types.FileRecord{
		types.NewTextFile("index.html", "old index", "html"),
		types.NewTextFile("styles.css", "A", "css"),
		types.NewTextFile("scripts.js", "oldJS()", "js"),
	}
	plan := PlanMerge(MergeInput{Mode: ModeModifyProject, Prior: prior, Result: resultWith("B", "newJS()")})

	css, ok := writeByName(plan, "styles.css")
	if !ok {
		t.Fatal("styles.css not written")
	}
	if css.Content != "A"+cssUpdateMarker+"B" {
		t.Errorf("css = %q", css.Content)
	}
	a, marker, b := strings.Index(css.Content, "A"), strings.Index(css.Content, "Updated Styles"), strings.Index(css.Content, "B")
	if !(a < marker && marker < b) {
		t.Errorf("old content must precede the marker and the new content: %q", css.Content)
	}

	js, _ := writeByName(plan, "scripts.js")
	if js.Content != "oldJS()"+jsUpdateMarker+"newJS()" {
		t.Errorf("js = %q", js.Content)
	}
}

func TestPlanMergeCreatesMissingAssets(t *testing.T) {
	prior := []types.FileRecord{types.NewTextFile("index.html", "old", "html")}
	plan := PlanMerge(MergeInput{Mode: ModeModifyProject, Prior: prior, Result: resultWith("B", "")})

	css, ok := writeByName(plan, "styles.css")
	if !ok || css.Content != "B" {
		t.Errorf("expected fresh styles.css, got %+v", css)
	}
	if _, ok := writeByName(plan, "scripts.js"); ok {
		t.Error("scripts.js written without any JS")
	}
}

func TestPlanMergeKeepsUntouchedPriorAssetsAndImages(t *testing.T) {
	prior := []types.FileRecord{
		types.NewTextFile("index.html", "old", "html"),
		types.NewTextFile("styles.css", "A", "css"),
		types.NewTextFile("scripts.js", "J", "js"),
		types.NewBinaryFile("hero.jpg", []byte{1, 2}, "jpg"),
	}
	plan := PlanMerge(MergeInput{Mode: ModeModifyProject, Prior: prior, Result: resultWith("", "")})

	if len(plan.Writes) != 1 || plan.Writes[0].Filename != "index.html" {
		t.Errorf("only the index should be rewritten, got %d writes", len(plan.Writes))
	}
	want := []string{"index.html", "styles.css", "scripts.js", "hero.jpg"}
	if !reflect.DeepEqual(plan.Manifest, want) {
		t.Errorf("manifest = %v, want %v", plan.Manifest, want)
	}
	if !reflect.DeepEqual(plan.Deletes, []string{"index.html"}) {
		t.Errorf("deletes = %v", plan.Deletes)
	}
}

func TestPlanMergeOrphanPolicies(t *testing.T) {
	prior := []types.FileRecord{
		types.NewTextFile("index.html", "old", "html"),
		types.NewTextFile("about.html", "old about", "html"),
		types.NewTextFile("blog.html", "old blog", "html"),
	}

	dropped := PlanMerge(MergeInput{Mode: ModeModifyProject, Prior: prior, Result: resultWith("", "", "about.html"), Orphans: OrphanDrop})
	if !reflect.DeepEqual(dropped.Deletes, []string{"index.html", "about.html", "blog.html"}) {
		t.Errorf("drop: deletes = %v", dropped.Deletes)
	}
	if !reflect.DeepEqual(dropped.Manifest, []string{"index.html", "about.html"}) {
		t.Errorf("drop: manifest = %v", dropped.Manifest)
	}

	retained := PlanMerge(MergeInput{Mode: ModeModifyProject, Prior: prior, Result: resultWith("", "", "about.html"), Orphans: OrphanRetain})
	if !reflect.DeepEqual(retained.Deletes, []string{"index.html", "about.html"}) {
		t.Errorf("retain: deletes = %v", retained.Deletes)
	}
	if !reflect.DeepEqual(retained.Manifest, []string{"index.html", "about.html", "blog.html"}) {
		t.Errorf("retain: manifest = %v", retained.Manifest)
	}
	if _, ok := writeByName(retained, "blog.html"); ok {
		t.Error("retained orphan should not be rewritten")
	}
}

func TestParseOrphanPolicy(t *testing.T) {
	for in, want := range map[string]OrphanPolicy{"": OrphanDrop, "drop": OrphanDrop, " Retain ": OrphanRetain} {
		got, err := ParseOrphanPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseOrphanPolicy(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseOrphanPolicy("archive"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestAcceptUploads(t *testing.T) {
	uploads := []types.Upload{
		{Filename: "run.sh", Data: []byte("x")},
		{Filename: "../../hero image.png", Data: []byte{1}},
		{Filename: "index.html", Data: []byte("<html>")},
		{Filename: "hero_image.png", Data: []byte{2}},
		{Filename: "a.jpg", Data: []byte{3}},
		{Filename: "b.gif", Data: []byte{4}},
		{Filename: "c.svg", Data: []byte{5}},
	}
	got := AcceptUploads(uploads, 3)

	var names []string
	for _, f := range got {
		names = append(names, f.Filename)
	}
	if !reflect.DeepEqual(names, []string{"hero_image.png", "a.jpg", "b.gif"}) {
		t.Errorf("accepted = %v", names)
	}
	if got[0].FileType != "png" || got[0].ContentBinary[0] != 1 {
		t.Errorf("unexpected first record %+v", got[0])
	}
}

func TestModeString(t *testing.T) {
	if ModeNewProject.String() != "NEW_PROJECT" || ModeModifyProject.String() != "MODIFY_PROJECT" {
		t.Error("unexpected mode names")
	}
}
