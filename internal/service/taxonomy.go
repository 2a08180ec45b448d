package service

import (
	"context"

	"github.com/sirupsen/logrus"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/module"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/taxonomy"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/versioning"
)

const (
	operationImport    = versioning.Operation("import")
	operationTree      = versioning.Operation("tree")
	operationAncestors = versioning.Operation("ancestors")
)

// loadTree reads a classification tree with its names.
func loadTree(ctx context.Context, st store.Store, kind model.TaxonomyKind, langs *languages) (*taxonomy.Tree, error) {
	rows, err := st.ListTaxonomyNodes(ctx, kind)
	if err != nil {
		return nil, err
	}
	names, err := st.ListTaxonomyNames(ctx, kind)
	if err != nil {
		return nil, err
	}

	byTerm := make(map[string]map[string]string)
	for _, n := range names {
		if byTerm[n.TermID] == nil {
			byTerm[n.TermID] = make(map[string]string)
		}
		byTerm[n.TermID][langs.code(n.LocalizationID)] = n.Name
	}

	nodes := make([]taxonomy.Node, 0, len(rows))
	for _, r := range rows {
		n := taxonomy.Node{
			ID:          r.ID,
			Code:        r.Code,
			URI:         r.URI,
			OrderNumber: r.OrderNumber,
			Names:       byTerm[r.ID],
		}
		if r.ParentID != nil {
			n.ParentID = *r.ParentID
		}
		nodes = append(nodes, n)
	}
	return taxonomy.Build(nodes)
}

// ImportTaxonomy merges nodes into a classification tree. Existing nodes are
// updated, names are merged per language. The merged tree must stay acyclic
// and every parent must exist.
func (s *CatalogService) ImportTaxonomy(ctx context.Context, request *v1.ImportTaxonomyRequest) (*v1.ImportTaxonomyResponse, error) {
	kind, err := model.ParseTaxonomyKind(request.Taxonomy)
	if err != nil {
		return nil, s.fail(request.Taxonomy, operationImport, err)
	}
	actor := module.Actor(ctx)

	err = s.store.Transaction(ctx, func(tx store.Store) error {
		langs, err := loadLanguages(ctx, tx)
		if err != nil {
			return err
		}
		current, err := loadTree(ctx, tx, kind, langs)
		if err != nil {
			return err
		}

		merged := make([]taxonomy.Node, 0, current.Len()+len(request.Nodes))
		index := make(map[string]int, cap(merged))
		for _, n := range current.Nodes() {
			index[n.ID] = len(merged)
			merged = append(merged, *n)
		}

		imported := make(map[string]bool, len(request.Nodes))
		for _, in := range request.Nodes {
			if imported[in.ID] {
				return invalid("node %s is imported twice", in.ID)
			}
			imported[in.ID] = true

			names := make(map[string]string, len(in.Names))
			for code, name := range in.Names {
				lang, err := versioning.NormalizeLanguage(code)
				if err != nil {
					return err
				}
				names[lang] = name
			}

			n := taxonomy.Node{
				ID:          in.ID,
				ParentID:    in.ParentID,
				Code:        in.Code,
				URI:         in.URI,
				OrderNumber: in.OrderNumber,
				Names:       names,
			}
			if i, ok := index[in.ID]; ok {
				for lang, name := range merged[i].Names {
					if _, ok := n.Names[lang]; !ok {
						n.Names[lang] = name
					}
				}
				merged[i] = n
				continue
			}
			index[in.ID] = len(merged)
			merged = append(merged, n)
		}

		tree, err := taxonomy.Build(merged)
		if err != nil {
			return err
		}

		var (
			rows  []*model.TaxonomyNode
			names []*model.TaxonomyName
		)
		for _, n := range tree.Nodes() {
			if !imported[n.ID] {
				continue
			}
			row := &model.TaxonomyNode{
				ID:          n.ID,
				Code:        n.Code,
				URI:         n.URI,
				OrderNumber: n.OrderNumber,
				Auditing:    model.NewAuditing(actor),
			}
			if n.ParentID != "" {
				row.ParentID = &n.ParentID
			}
			rows = append(rows, row)

			for _, lang := range sortedKeys(n.Names) {
				id, err := langs.id(lang)
				if err != nil {
					return err
				}
				names = append(names, &model.TaxonomyName{
					Kind:           string(kind),
					TermID:         n.ID,
					LocalizationID: id,
					Name:           n.Names[lang],
					Auditing:       model.NewAuditing(actor),
				})
			}
		}

		if err := tx.UpsertTaxonomyNodes(ctx, kind, rows); err != nil {
			return err
		}
		return tx.UpsertTaxonomyNames(ctx, names)
	})
	if err != nil {
		return nil, s.fail(request.Taxonomy, operationImport, err)
	}

	s.metrics.IncOperation(string(kind), string(operationImport))
	logrus.Infof("imported %d %s nodes", len(request.Nodes), kind)
	return &v1.ImportTaxonomyResponse{Imported: len(request.Nodes)}, nil
}

// GetTaxonomyTree returns a classification tree nested from its roots.
func (s *CatalogService) GetTaxonomyTree(ctx context.Context, request *v1.GetTaxonomyTreeRequest) (*v1.GetTaxonomyTreeResponse, error) {
	kind, err := model.ParseTaxonomyKind(request.Taxonomy)
	if err != nil {
		return nil, s.fail(request.Taxonomy, operationTree, err)
	}
	langs, err := loadLanguages(ctx, s.store)
	if err != nil {
		return nil, s.fail(request.Taxonomy, operationTree, err)
	}
	tree, err := loadTree(ctx, s.store, kind, langs)
	if err != nil {
		return nil, s.fail(request.Taxonomy, operationTree, err)
	}

	language := preferredLanguage(request.Language)
	var nest func(nodes []*taxonomy.Node) []*v1.TaxonomyNode
	nest = func(nodes []*taxonomy.Node) []*v1.TaxonomyNode {
		out := make([]*v1.TaxonomyNode, 0, len(nodes))
		for _, n := range nodes {
			node := toTaxonomyNode(tree, n, language)
			node.Children = nest(tree.Children(n.ID))
			out = append(out, node)
		}
		return out
	}
	return &v1.GetTaxonomyTreeResponse{Roots: nest(tree.Roots())}, nil
}

// GetTaxonomyAncestors returns the path from the root of the tree down to the
// parent of a node.
func (s *CatalogService) GetTaxonomyAncestors(ctx context.Context, request *v1.GetTaxonomyAncestorsRequest) (*v1.GetTaxonomyAncestorsResponse, error) {
	kind, err := model.ParseTaxonomyKind(request.Taxonomy)
	if err != nil {
		return nil, s.fail(request.Taxonomy, operationAncestors, err)
	}
	langs, err := loadLanguages(ctx, s.store)
	if err != nil {
		return nil, s.fail(request.Taxonomy, operationAncestors, err)
	}
	tree, err := loadTree(ctx, s.store, kind, langs)
	if err != nil {
		return nil, s.fail(request.Taxonomy, operationAncestors, err)
	}
	ancestors, err := tree.Ancestors(request.ID)
	if err != nil {
		return nil, s.fail(request.Taxonomy, operationAncestors, err)
	}

	language := preferredLanguage(request.Language)
	nodes := make([]*v1.TaxonomyNode, 0, len(ancestors))
	for _, n := range ancestors {
		nodes = append(nodes, toTaxonomyNode(tree, n, language))
	}
	return &v1.GetTaxonomyAncestorsResponse{Nodes: nodes}, nil
}

func toTaxonomyNode(tree *taxonomy.Tree, n *taxonomy.Node, language string) *v1.TaxonomyNode {
	node := &v1.TaxonomyNode{
		ID:          n.ID,
		ParentID:    n.ParentID,
		Code:        n.Code,
		URI:         n.URI,
		OrderNumber: n.OrderNumber,
		Names:       n.Names,
	}
	fallbacks := versioning.Fallbacks(language)
	node.Name, _ = tree.Name(n.ID, fallbacks[0], fallbacks[1:]...)
	return node
}
