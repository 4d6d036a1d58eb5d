// Package paths provides centralized path handling for anvil.
//
// A Resolver fixes the three locations every expansion works from:
//
//   - Input root: the template repository itself
//   - Template root: the directory whose contents get expanded, either the
//     input root (root arrangement) or a directory inside it (subnode)
//   - Template parent: the directory template sources resolve against
//
// Template content loads relative to the parent rather than the template
// root so the root's own directory name can be rendered as a template
// expression like any other node. Join operations reject absolute
// arguments; every path that reaches the filesystem goes through one of
// them.
//
// # Usage
//
//	r, err := paths.NewResolver("/repos/starter", "app")
//	if err != nil {
//	    return err
//	}
//
//	r.TemplateParent()                  // /repos/starter
//	r.TemplateName()                    // app
//	abs, _ := r.TemplateParentJoin("app/main.py")
//	// abs == /repos/starter/app/main.py
package paths
