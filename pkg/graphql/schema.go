package graphql

import (
	gql "github.com/graphql-go/graphql"
	"github.com/pkg/errors"
)

// NewSchema builds the executable schema with every field bound to r.
func NewSchema(r *resolver) (gql.Schema, error) {
	var authorType, bookType *gql.Object

	authorType = gql.NewObject(gql.ObjectConfig{
		Name: "Author",
		Fields: gql.FieldsThunk(func() gql.Fields {
			return gql.Fields{
				"id":   &gql.Field{Type: gql.NewNonNull(gql.ID)},
				"name": &gql.Field{Type: gql.NewNonNull(gql.String)},
				"bio":  &gql.Field{Type: gql.NewNonNull(gql.String)},
				"books": &gql.Field{
					Type:    gql.NewNonNull(gql.NewList(gql.NewNonNull(bookType))),
					Resolve: r.authorBooks,
				},
			}
		}),
	})

	bookType = gql.NewObject(gql.ObjectConfig{
		Name: "Book",
		Fields: gql.FieldsThunk(func() gql.Fields {
			return gql.Fields{
				"id":            &gql.Field{Type: gql.NewNonNull(gql.ID)},
				"title":         &gql.Field{Type: gql.NewNonNull(gql.String)},
				"description":   &gql.Field{Type: gql.NewNonNull(gql.String)},
				"publishedYear": &gql.Field{Type: gql.NewNonNull(gql.Int)},
				"stockCount":    &gql.Field{Type: gql.NewNonNull(gql.Int)},
				"author": &gql.Field{
					Type:    gql.NewNonNull(authorType),
					Resolve: r.bookAuthor,
				},
			}
		}),
	})

	createAuthorInput := gql.NewInputObject(gql.InputObjectConfig{
		Name: "CreateAuthorInput",
		Fields: gql.InputObjectConfigFieldMap{
			"name": &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.String)},
			"bio":  &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.String)},
		},
	})

	updateAuthorInput := gql.NewInputObject(gql.InputObjectConfig{
		Name: "UpdateAuthorInput",
		Fields: gql.InputObjectConfigFieldMap{
			"name": &gql.InputObjectFieldConfig{Type: gql.String},
			"bio":  &gql.InputObjectFieldConfig{Type: gql.String},
		},
	})

	createBookInput := gql.NewInputObject(gql.InputObjectConfig{
		Name: "CreateBookInput",
		Fields: gql.InputObjectConfigFieldMap{
			"title":         &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.String)},
			"authorId":      &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.Int)},
			"description":   &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.String)},
			"publishedYear": &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.Int)},
			"stockCount":    &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.Int)},
		},
	})

	updateBookInput := gql.NewInputObject(gql.InputObjectConfig{
		Name: "UpdateBookInput",
		Fields: gql.InputObjectConfigFieldMap{
			"title":         &gql.InputObjectFieldConfig{Type: gql.String},
			"authorId":      &gql.InputObjectFieldConfig{Type: gql.Int},
			"description":   &gql.InputObjectFieldConfig{Type: gql.String},
			"publishedYear": &gql.InputObjectFieldConfig{Type: gql.Int},
			"stockCount":    &gql.InputObjectFieldConfig{Type: gql.Int},
		},
	})

	idArg := gql.FieldConfigArgument{
		"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
	}

	query := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"authors": &gql.Field{
				Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(authorType))),
				Args: gql.FieldConfigArgument{
					"search": &gql.ArgumentConfig{Type: gql.String},
					"limit":  &gql.ArgumentConfig{Type: gql.Int},
					"offset": &gql.ArgumentConfig{Type: gql.Int},
				},
				Resolve: r.authors,
			},
			"author": &gql.Field{
				Type:    gql.NewNonNull(authorType),
				Args:    idArg,
				Resolve: r.author,
			},
			"books": &gql.Field{
				Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(bookType))),
				Args: gql.FieldConfigArgument{
					"authorId": &gql.ArgumentConfig{Type: gql.Int},
					"limit":    &gql.ArgumentConfig{Type: gql.Int},
					"offset":   &gql.ArgumentConfig{Type: gql.Int},
				},
				Resolve: r.books,
			},
			"book": &gql.Field{
				Type:    gql.NewNonNull(bookType),
				Args:    idArg,
				Resolve: r.book,
			},
		},
	})

	mutation := gql.NewObject(gql.ObjectConfig{
		Name: "Mutation",
		Fields: gql.Fields{
			"createAuthor": &gql.Field{
				Type: gql.NewNonNull(authorType),
				Args: gql.FieldConfigArgument{
					"input": &gql.ArgumentConfig{Type: gql.NewNonNull(createAuthorInput)},
				},
				Resolve: r.createAuthor,
			},
			"updateAuthor": &gql.Field{
				Type: gql.NewNonNull(authorType),
				Args: gql.FieldConfigArgument{
					"id":    &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
					"input": &gql.ArgumentConfig{Type: gql.NewNonNull(updateAuthorInput)},
				},
				Resolve: r.updateAuthor,
			},
			"removeAuthor": &gql.Field{
				Type:    gql.NewNonNull(authorType),
				Args:    idArg,
				Resolve: r.removeAuthor,
			},
			"createBook": &gql.Field{
				Type: gql.NewNonNull(bookType),
				Args: gql.FieldConfigArgument{
					"input": &gql.ArgumentConfig{Type: gql.NewNonNull(createBookInput)},
				},
				Resolve: r.createBook,
			},
			"updateBook": &gql.Field{
				Type: gql.NewNonNull(bookType),
				Args: gql.FieldConfigArgument{
					"id":    &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
					"input": &gql.ArgumentConfig{Type: gql.NewNonNull(updateBookInput)},
				},
				Resolve: r.updateBook,
			},
			"deleteBook": &gql.Field{
				Type:    gql.NewNonNull(gql.Boolean),
				Args:    idArg,
				Resolve: r.deleteBook,
			},
		},
	})

	schema, err := gql.NewSchema(gql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
	if err != nil {
		return gql.Schema{}, errors.WithStack(err)
	}
	return schema, nil
}
