package sitegen

import (
	"fmt"
	"strings"

	"sitegen_server/internal/types"
	"sitegen_server/internal/utils"
)

// Mode selects how a generation pass is merged into the project's files.
type Mode int

const (
	ModeNewProject Mode = iota
	ModeModifyProject
)

func (m Mode) String() string {
	if m == ModeModifyProject {
		return "MODIFY_PROJECT"
	}
	return "NEW_PROJECT"
}

// OrphanPolicy decides what happens, on modification, to pages that existed
// before but are not linked from the new index.
type OrphanPolicy string

const (
	OrphanDrop   OrphanPolicy = "drop"
	OrphanRetain OrphanPolicy = "retain"
)

func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch OrphanPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrphanDrop:
		return OrphanDrop, nil
	case OrphanRetain:
		return OrphanRetain, nil
	}
	return "", fmt.Errorf("unknown orphan page policy %q (want %q or %q)", s, OrphanDrop, OrphanRetain)
}

const (
	cssUpdateMarker = "\n\n/* === Updated Styles === */\n"
	jsUpdateMarker  = "\n\n// === Updated Scripts ===\n"
)

// MergeInput is everything the merge engine needs for one pass.
type MergeInput struct {
	Mode    Mode
	Prior   []types.FileRecord
	Result  *GenerationResult
	Uploads []types.FileRecord
	Orphans OrphanPolicy
}

// MergePlan lists the storage operations for one pass. Deletes are applied
// before Writes. Manifest is the project's file list once the plan is applied.
type MergePlan struct {
	Deletes  []string
	Writes   []types.FileRecord
	Manifest []string
}

// PlanMerge decides which files to write, append to, keep or delete.
func PlanMerge(in MergeInput) MergePlan {
	var plan MergePlan
	written := make(map[string]bool)
	write := func(f types.FileRecord) {
		if written[f.Filename] {
			return
		}
		written[f.Filename] = true
		plan.Writes = append(plan.Writes, f)
		plan.Manifest = append(plan.Manifest, f.Filename)
	}

	res := in.Result
	write(types.NewTextFile(IndexFile, res.Code, "html"))
	for _, page := range res.Worklist {
		if doc, ok := res.Pages[page.Filename]; ok {
			write(types.NewTextFile(page.Filename, doc.Serialize(), "html"))
		}
	}

	if in.Mode == ModeNewProject {
		if res.Assets.CSS != "" {
			write(types.NewTextFile(StylesheetFile, res.Assets.CSS, "css"))
		}
		if res.Assets.JS != "" {
			write(types.NewTextFile(ScriptFile, res.Assets.JS, "js"))
		}
		for _, up := range in.Uploads {
			write(up)
		}
		return plan
	}

	var priorCSS, priorJS *types.FileRecord
	var kept []string
	for i := range in.Prior {
		f := &in.Prior[i]
		switch {
		case f.FileType == "html":
			if in.Orphans == OrphanRetain && !written[f.Filename] {
				kept = append(kept, f.Filename)
				continue
			}
			plan.Deletes = append(plan.Deletes, f.Filename)
		case f.Filename == StylesheetFile:
			priorCSS = f
		case f.Filename == ScriptFile:
			priorJS = f
		default:
			// Images and any other non-page files are preserved.
			kept = append(kept, f.Filename)
		}
	}

	mergeAsset(&plan, write, priorCSS, StylesheetFile, "css", res.Assets.CSS, cssUpdateMarker)
	mergeAsset(&plan, write, priorJS, ScriptFile, "js", res.Assets.JS, jsUpdateMarker)

	for _, up := range in.Uploads {
		write(up)
	}
	for _, name := range kept {
		if !written[name] {
			plan.Manifest = append(plan.Manifest, name)
		}
	}
	return plan
}

// mergeAsset appends fresh content to a prior asset (or creates it), and
// keeps an untouched prior asset in the manifest.
func mergeAsset(plan *MergePlan, write func(types.FileRecord), prior *types.FileRecord, filename, fileType, fresh, marker string) {
	switch {
	case fresh != "" && prior != nil:
		write(types.NewTextFile(filename, prior.Content+marker+fresh, fileType))
	case fresh != "":
		write(types.NewTextFile(filename, fresh, fileType))
	case prior != nil:
		plan.Manifest = append(plan.Manifest, filename)
	}
}

// AcceptUploads filters candidate uploads through the extension allow-list,
// sanitises their names and keeps at most limit of them.
func AcceptUploads(uploads []types.Upload, limit int) []types.FileRecord {
	var accepted []types.FileRecord
	seen := make(map[string]bool)
	for _, up := range uploads {
		if len(accepted) >= limit {
			break
		}
		name := utils.SecureFilename(up.Filename)
		if name == "" || !utils.AllowedFile(name) || seen[name] {
			continue
		}
		if name == IndexFile || name == StylesheetFile || name == ScriptFile {
			continue
		}
		seen[name] = true
		accepted = append(accepted, types.NewBinaryFile(name, up.Data, utils.DetermineFileType(name)))
	}
	return accepted
}
