package navigation

import (
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
)

// Kind tags a navigation node as a leaf action or a section of children.
type Kind string

const (
	KindLeaf    Kind = "leaf"
	KindSection Kind = "section"
)

// Node is one entry of the sidebar tree. Icon names a lucide icon.
type Node struct {
	Kind     Kind   `json:"kind"`
	ID       string `json:"id"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	Open     bool   `json:"open,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Tree is the sidebar with its active leaf.
type Tree struct {
	Items  []Node `json:"items"`
	Active string `json:"active"`
}

// DefaultActive is the leaf selected when the dashboard opens.
const DefaultActive = "returns-yandex"

func leaf(id, label, icon string) Node {
	return Node{Kind: KindLeaf, ID: id, Label: label, Icon: icon}
}

func section(id, label, icon string, children ...Node) Node {
	return Node{Kind: KindSection, ID: id, Label: label, Icon: icon, Open: true, Children: children}
}

// Default returns the integrator dashboard menu.
func Default() Tree {
	return Tree{
		Active: DefaultActive,
		Items: []Node{
			leaf("dashboards", "Дашборды", "LayoutDashboard"),
			leaf("monthly-summary", "Сводка за месяц", "Calendar"),
			section("reference", "Справочники", "BookOpen",
				leaf("organizations", "Организации", "Building2"),
				leaf("counterparties", "Контрагенты", "Users"),
				leaf("nomenclature", "Номенклатура", "Package"),
				leaf("nomenclature-list", "Номенклатура (список)", "FileText"),
				leaf("marketplaces", "Маркетплейсы", "ShoppingCart"),
				leaf("goods-mp", "Товары МП", "Package2"),
			),
			section("documents", "Документы", "FileText",
				leaf("sales-mp", "Продажи МП", "DollarSign"),
				leaf("ozon-fbs", "OZON FBS Posting", "Package"),
				leaf("ozon-fbo", "OZON FBO Posting", "Package"),
				leaf("wb-orders", "WB Orders", "ShoppingCart"),
				leaf("wb-sales", "WB Sales", "DollarSign"),
				leaf("ym-orders", "YM Orders", "ShoppingCart"),
			),
			section("integrations", "Интеграции", "RefreshCcw",
				leaf("connections-1c", "Подключения 1С", "Package"),
				leaf("connections-mp", "Подключения МП", "ShoppingCart"),
				leaf("import-ut11", "Импорт из УТ 11", "Download"),
				leaf("import-ozon", "Импорт из OZON", "Download"),
				leaf("returns-ozon", "Возвраты OZON", "RotateCcw"),
				leaf("returns-yandex", "Возвраты Yandex", "RotateCcw"),
				leaf("transactions-ozon", "Транзакции OZON", "DollarSign"),
			),
		},
	}
}

// Walk visits nodes depth-first in display order. Returning false from fn stops the walk.
func (t Tree) Walk(fn func(node Node, depth int) bool) {
	walk(t.Items, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) bool) bool {
	for _, n := range nodes {
		if !fn(n, depth) {
			return false
		}
		if n.Kind == KindSection && !walk(n.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// Find returns the node with id.
func (t Tree) Find(id string) (Node, bool) {
	var found Node
	ok := false
	t.Walk(func(n Node, _ int) bool {
		if n.ID == id {
			found, ok = n, true
			return false
		}
		return true
	})
	return found, ok
}

// Path returns the labels from the top level down to id, for breadcrumbs.
func (t Tree) Path(id string) []string {
	var path []string
	var search func(nodes []Node, prefix []string) bool
	search = func(nodes []Node, prefix []string) bool {
		for _, n := range nodes {
			next := append(append([]string{}, prefix...), n.Label)
			if n.ID == id {
				path = next
				return true
			}
			if search(n.Children, next) {
				return true
			}
		}
		return false
	}
	search(t.Items, nil)
	return path
}

// Activate returns a copy of the tree with id as the active leaf.
func (t Tree) Activate(id string) (Tree, error) {
	n, ok := t.Find(id)
	if !ok {
		return t, pkgerrors.New(pkgerrors.CodeNotFound, "navigation item not found").
			WithDetails(map[string]any{"id": id})
	}
	if n.Kind != KindLeaf {
		return t, pkgerrors.New(pkgerrors.CodeValidation, "only leaf items can be active").
			WithDetails(map[string]any{"id": id})
	}
	t.Active = id
	return t, nil
}
