package linear

import (
	"fmt"
	"strings"
)

// issueFields is the selection set shared by every issue-returning
// operation. Relationship fields stay nested here; parseIssue flattens
// them.
const issueFields = `id identifier title description url priority estimate dueDate createdAt updatedAt
state { id name }
assignee { id name }
project { id name }
cycle { id }
parent { id }
labels { nodes { id name } }`

const projectFields = `id name description state url`
const cycleFields = `id name number startsAt endsAt`
const commentFields = `id body createdAt user { id name }`
const labelFields = `id name color`
const documentFields = `id title content url project { id }`
const webhookFields = `id label url enabled resourceTypes`

// filterClause is one equality filter on a list query: a variable
// declaration for the query signature and the filter expression that
// references it. Values are always bound through the variables map.
type filterClause struct {
	decl string
	expr string
}

// buildListQuery assembles a paginated list query over the given
// connection field. Each present filter contributes one bound variable.
// With no filters an empty filter object is emitted, which the API treats
// as "no filtering".
func buildListQuery(field, nodeFields string, clauses []filterClause) string {
	decls := make([]string, 0, len(clauses)+1)
	decls = append(decls, "$first: Int!")
	exprs := make([]string, 0, len(clauses))
	for _, c := range clauses {
		decls = append(decls, c.decl)
		exprs = append(exprs, c.expr)
	}
	return fmt.Sprintf("query(%s) { %s(first: $first, filter: { %s }) { nodes { %s } } }",
		strings.Join(decls, ", "), field, strings.Join(exprs, ", "), nodeFields)
}

// mutationInput assembles the input object of a create/update mutation.
// Only fields the caller explicitly supplied are present; a field set to
// nil is an explicit clear, a field never set is entirely absent.
type mutationInput map[string]any

func (in mutationInput) set(name string, value any) {
	in[name] = value
}

// setOrClear implements the empty-string clear convention of update
// operations: a supplied empty value becomes JSON null, anything else is
// passed through.
func (in mutationInput) setOrClear(name, value string) {
	if value == "" {
		in[name] = nil
		return
	}
	in[name] = value
}
