package pages

import "context"

// MenuItem is a page in a navigation tree.
type MenuItem struct {
	Page     Page
	Children []*MenuItem
	// Active is set on the current page and its ancestors.
	Active bool
}

// Menu builds the navigation tree below parentID, levels deep, ordered by
// sibling order. An empty parentID starts at the top-level pages. Items on
// the way to currentPath are marked active.
func Menu(ctx context.Context, repo Repository, parentID string, levels int, currentPath string) ([]*MenuItem, error) {
	if levels <= 0 {
		return nil, nil
	}

	children, err := repo.Children(ctx, parentID)
	if err != nil {
		return nil, err
	}

	items := make([]*MenuItem, 0, len(children))
	for _, child := range children {
		item := &MenuItem{
			Page:   child,
			Active: child.Path == currentPath || (!child.IsRoot() && IsDescendant(currentPath, child.Path)),
		}
		if !child.IsRoot() {
			item.Children, err = Menu(ctx, repo, child.ID, levels-1, currentPath)
			if err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}
	return items, nil
}
