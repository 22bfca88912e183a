package graphql

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/99designs/gqlgen/graphql"
	"github.com/google/uuid"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/transport/graphql/model"
)

// ResolverRoot gives the executor the resolvers for fields that need I/O.
// Scalar fields are read straight off the domain types.
type ResolverRoot interface {
	Query() QueryResolver
	Group() GroupResolver
	Member() MemberResolver
	Activity() ActivityResolver
}

type QueryResolver interface {
	Me(ctx context.Context) (*domain.User, error)
	Groups(ctx context.Context) ([]domain.Group, error)
	Group(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	Activity(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	Notifications(ctx context.Context, limit *int) ([]domain.Notification, error)
	Obligation(ctx context.Context) (*domain.Obligation, error)
}

type GroupResolver interface {
	Members(ctx context.Context, obj *domain.Group) ([]domain.Member, error)
	Activities(ctx context.Context, obj *domain.Group) ([]domain.Activity, error)
}

type MemberResolver interface {
	User(ctx context.Context, obj *domain.Member) (*domain.User, error)
}

type ActivityResolver interface {
	Creator(ctx context.Context, obj domain.Activity) (*domain.User, error)
}

// executableSchema executes query operations against schema.graphqls.
// List elements resolve concurrently so per-item loads share one batch.
// A failed field is reported on its path and resolves to null; the null is
// not propagated to non-null parents.
type executableSchema struct {
	// Complexity comes from the embedded nil schema and is never called:
	// no complexity limit extension is installed.
	graphql.ExecutableSchema
	resolvers ResolverRoot
}

// NewExecutableSchema returns the schema for gqlgen's handler.
func NewExecutableSchema(resolvers ResolverRoot) graphql.ExecutableSchema {
	return &executableSchema{resolvers: resolvers}
}

func (e *executableSchema) Schema() *ast.Schema {
	return parsedSchema
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	done := false

	return func(ctx context.Context) *graphql.Response {
		if done {
			return nil
		}
		done = true

		if opCtx.Operation.Operation != ast.Query {
			return graphql.ErrorResponse(ctx, "%s operations are not supported, use the REST API", opCtx.Operation.Operation)
		}

		ex := &execution{op: opCtx, root: e.resolvers}
		var buf bytes.Buffer
		ex.query(ctx, opCtx.Operation.SelectionSet).MarshalGQL(&buf)
		return &graphql.Response{Data: buf.Bytes()}
	}
}

// ---------------------------------------------------------------------------
// Execution
// ---------------------------------------------------------------------------

type execution struct {
	op   *graphql.OperationContext
	root ResolverRoot
}

type resolveFunc func(ctx context.Context, path ast.Path, f graphql.CollectedField) (graphql.Marshaler, error)

// object resolves the selection set of one object of type typeName.
func (ex *execution) object(ctx context.Context, path ast.Path, sel ast.SelectionSet, typeName string, resolve resolveFunc) graphql.Marshaler {
	fields := graphql.CollectFields(ex.op, sel, []string{typeName})
	out := &object{keys: make([]string, len(fields)), values: make([]graphql.Marshaler, len(fields))}

	for i, f := range fields {
		out.keys[i] = f.Alias
		fp := appendPath(path, ast.PathName(f.Alias))

		if f.Name == "__typename" {
			out.values[i] = graphql.MarshalString(typeName)
			continue
		}
		v, err := resolve(ctx, fp, f)
		switch {
		case err != nil:
			out.values[i] = fail(ctx, fp, err)
		case v == nil:
			out.values[i] = graphql.Null
		default:
			out.values[i] = v
		}
	}
	return out
}

func (ex *execution) query(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler {
	q := ex.root.Query()
	return ex.object(ctx, nil, sel, "Query", func(ctx context.Context, path ast.Path, f graphql.CollectedField) (graphql.Marshaler, error) {
		args := f.ArgumentMap(ex.op.Variables)

		switch f.Name {
		case "me":
			u, err := q.Me(ctx)
			if err != nil {
				return nil, err
			}
			return ex.user(ctx, path, f.Selections, u), nil

		case "groups":
			groups, err := q.Groups(ctx)
			if err != nil {
				return nil, err
			}
			return each(ctx, path, groups, func(ctx context.Context, path ast.Path, g domain.Group) graphql.Marshaler {
				return ex.group(ctx, path, f.Selections, &g)
			}), nil

		case "group":
			id, err := model.UnmarshalUUID(args["id"])
			if err != nil {
				return nil, domain.NewValidationError("id", err.Error())
			}
			g, err := q.Group(ctx, id)
			if err != nil {
				return nil, err
			}
			return ex.group(ctx, path, f.Selections, g), nil

		case "activity":
			id, err := model.UnmarshalUUID(args["id"])
			if err != nil {
				return nil, domain.NewValidationError("id", err.Error())
			}
			a, err := q.Activity(ctx, id)
			if err != nil {
				return nil, err
			}
			return ex.activity(ctx, path, f.Selections, a), nil

		case "notifications":
			var limit *int
			if v, ok := args["limit"]; ok && v != nil {
				n, err := model.UnmarshalInt(v)
				if err != nil {
					return nil, domain.NewValidationError("limit", err.Error())
				}
				limit = &n
			}
			list, err := q.Notifications(ctx, limit)
			if err != nil {
				return nil, err
			}
			return each(ctx, path, list, func(ctx context.Context, path ast.Path, n domain.Notification) graphql.Marshaler {
				return ex.notification(ctx, path, f.Selections, &n)
			}), nil

		case "obligation":
			ob, err := q.Obligation(ctx)
			if err != nil {
				return nil, err
			}
			return ex.obligation(ctx, path, f.Selections, ob), nil

		case "__schema", "__type":
			return nil, fmt.Errorf("introspection is disabled: %w", domain.ErrForbidden)
		}
		return nil, unknownField("Query", f.Name)
	})
}

func (ex *execution) user(ctx context.Context, path ast.Path, sel ast.SelectionSet, u *domain.User) graphql.Marshaler {
	if u == nil {
		return graphql.Null
	}
	return ex.object(ctx, path, sel, "User", func(_ context.Context, _ ast.Path, f graphql.CollectedField) (graphql.Marshaler, error) {
		switch f.Name {
		case "id":
			return model.MarshalUUID(u.ID), nil
		case "name":
			return graphql.MarshalString(u.Name), nil
		case "displayName":
			return graphql.MarshalString(u.DisplayName()), nil
		case "locale":
			return graphql.MarshalString(u.Locale), nil
		case "channel":
			return graphql.MarshalString(string(u.Channel)), nil
		}
		return nil, unknownField("User", f.Name)
	})
}

func (ex *execution) group(ctx context.Context, path ast.Path, sel ast.SelectionSet, g *domain.Group) graphql.Marshaler {
	if g == nil {
		return graphql.Null
	}
	r := ex.root.Group()
	return ex.object(ctx, path, sel, "Group", func(ctx context.Context, path ast.Path, f graphql.CollectedField) (graphql.Marshaler, error) {
		switch f.Name {
		case "id":
			return model.MarshalUUID(g.ID), nil
		case "name":
			return graphql.MarshalString(g.Name), nil
		case "joinCode":
			return graphql.MarshalString(g.JoinCode), nil
		case "createdBy":
			return model.MarshalUUID(g.CreatedBy), nil
		case "createdAt":
			return model.MarshalDateTime(g.CreatedAt), nil

		case "members":
			members, err := r.Members(ctx, g)
			if err != nil {
				return nil, err
			}
			return each(ctx, path, members, func(ctx context.Context, path ast.Path, m domain.Member) graphql.Marshaler {
				return ex.member(ctx, path, f.Selections, &m)
			}), nil

		case "activities":
			list, err := r.Activities(ctx, g)
			if err != nil {
				return nil, err
			}
			return each(ctx, path, list, func(ctx context.Context, path ast.Path, a domain.Activity) graphql.Marshaler {
				return ex.activity(ctx, path, f.Selections, a)
			}), nil
		}
		return nil, unknownField("Group", f.Name)
	})
}

func (ex *execution) member(ctx context.Context, path ast.Path, sel ast.SelectionSet, m *domain.Member) graphql.Marshaler {
	r := ex.root.Member()
	return ex.object(ctx, path, sel, "Member", func(ctx context.Context, path ast.Path, f graphql.CollectedField) (graphql.Marshaler, error) {
		switch f.Name {
		case "userId":
			return model.MarshalUUID(m.UserID), nil
		case "groupId":
			return model.MarshalUUID(m.GroupID), nil
		case "role":
			return graphql.MarshalString(m.Role.String()), nil
		case "joinedAt":
			return model.MarshalDateTime(m.JoinedAt), nil
		case "user":
			u, err := r.User(ctx, m)
			if err != nil {
				return nil, err
			}
			return ex.user(ctx, path, f.Selections, u), nil
		}
		return nil, unknownField("Member", f.Name)
	})
}

func (ex *execution) activity(ctx context.Context, path ast.Path, sel ast.SelectionSet, a domain.Activity) graphql.Marshaler {
	if a == nil {
		return graphql.Null
	}
	r := ex.root.Activity()
	b := a.Base()
	return ex.object(ctx, path, sel, "Activity", func(ctx context.Context, path ast.Path, f graphql.CollectedField) (graphql.Marshaler, error) {
		switch f.Name {
		case "id":
			return model.MarshalUUID(b.ID), nil
		case "kind":
			return graphql.MarshalString(string(a.Kind())), nil
		case "groupId":
			return model.MarshalUUID(b.GroupID), nil
		case "creatorId":
			return model.MarshalUUID(b.CreatorID), nil
		case "label":
			return graphql.MarshalString(b.Label), nil
		case "scheduledAt":
			return model.MarshalDateTime(b.ScheduledAt), nil
		case "revision":
			return graphql.MarshalInt(b.Revision), nil
		case "canceled":
			return graphql.MarshalBoolean(b.Canceled), nil
		case "open":
			return graphql.MarshalBoolean(domain.IsOpen(a)), nil

		case "creator":
			u, err := r.Creator(ctx, a)
			if err != nil {
				return nil, err
			}
			return ex.user(ctx, path, f.Selections, u), nil

		case "location":
			if m, ok := a.(*domain.Meeting); ok && m.Location != nil {
				return graphql.MarshalString(*m.Location), nil
			}
			return nil, nil
		case "options":
			if v, ok := a.(*domain.Vote); ok {
				return stringList(v.Options), nil
			}
			return nil, nil
		case "closed":
			if v, ok := a.(*domain.Vote); ok {
				return graphql.MarshalBoolean(v.Closed), nil
			}
			return nil, nil
		case "done":
			if t, ok := a.(*domain.Todo); ok {
				return graphql.MarshalBoolean(t.Done), nil
			}
			return nil, nil
		case "assignees":
			if t, ok := a.(*domain.Todo); ok {
				return uuids(t.Assignees), nil
			}
			return nil, nil
		}
		return nil, unknownField("Activity", f.Name)
	})
}

func (ex *execution) notification(ctx context.Context, path ast.Path, sel ast.SelectionSet, n *domain.Notification) graphql.Marshaler {
	return ex.object(ctx, path, sel, "Notification", func(_ context.Context, _ ast.Path, f graphql.CollectedField) (graphql.Marshaler, error) {
		switch f.Name {
		case "id":
			return model.MarshalUUID(n.ID), nil
		case "kind":
			return graphql.MarshalString(string(n.Kind)), nil
		case "entityId":
			if n.EntityID == nil {
				return nil, nil
			}
			return model.MarshalUUID(*n.EntityID), nil
		case "message":
			return graphql.MarshalString(n.Message), nil
		case "createdAt":
			return model.MarshalDateTime(n.CreatedAt), nil
		}
		return nil, unknownField("Notification", f.Name)
	})
}

func (ex *execution) obligation(ctx context.Context, path ast.Path, sel ast.SelectionSet, ob *domain.Obligation) graphql.Marshaler {
	if ob == nil {
		return graphql.Null
	}
	return ex.object(ctx, path, sel, "Obligation", func(_ context.Context, _ ast.Path, f graphql.CollectedField) (graphql.Marshaler, error) {
		switch f.Name {
		case "kind":
			return graphql.MarshalString(ob.Kind.String()), nil
		case "subjectId":
			return model.MarshalUUID(ob.SubjectID), nil
		}
		return nil, unknownField("Obligation", f.Name)
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// each resolves list elements concurrently, keeping their order.
func each[T any](ctx context.Context, path ast.Path, items []T, fn func(context.Context, ast.Path, T) graphql.Marshaler) graphql.Marshaler {
	out := make(graphql.Array, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := appendPath(path, ast.PathIndex(i))
			defer func() {
				if r := recover(); r != nil {
					out[i] = fail(ctx, p, fmt.Errorf("panic resolving %v: %v", p, r))
				}
			}()
			out[i] = fn(ctx, p, item)
		}()
	}
	wg.Wait()
	return out
}

// fail reports err on path and yields null for the field.
func fail(ctx context.Context, path ast.Path, err error) graphql.Marshaler {
	graphql.AddError(ctx, &gqlerror.Error{Err: err, Message: err.Error(), Path: path})
	return graphql.Null
}

func appendPath(path ast.Path, elem ast.PathElement) ast.Path {
	out := make(ast.Path, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}

func unknownField(typeName, field string) error {
	return fmt.Errorf("unknown field %s.%s", typeName, field)
}

func stringList(list []string) graphql.Marshaler {
	out := make(graphql.Array, len(list))
	for i, s := range list {
		out[i] = graphql.MarshalString(s)
	}
	return out
}

func uuids(ids []uuid.UUID) graphql.Marshaler {
	out := make(graphql.Array, len(ids))
	for i, id := range ids {
		out[i] = model.MarshalUUID(id)
	}
	return out
}

// object writes fields in selection order.
type object struct {
	keys   []string
	values []graphql.Marshaler
}

func (o *object) MarshalGQL(w io.Writer) {
	io.WriteString(w, "{")
	for i, k := range o.keys {
		if i > 0 {
			io.WriteString(w, ",")
		}
		graphql.MarshalString(k).MarshalGQL(w)
		io.WriteString(w, ":")
		o.values[i].MarshalGQL(w)
	}
	io.WriteString(w, "}")
}
