package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		sales, err := app.FindCollectionByNameOrId("sales")
		if err != nil {
			return err
		}
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("tickets")

		collection.Fields.Add(
			&core.TextField{Name: "ticket_code", Required: true},
			&core.RelationField{
				Name:          "sale_id",
				Required:      true,
				MaxSelect:     1,
				CollectionId:  sales.Id,
				CascadeDelete: true,
			},
			&core.RelationField{
				Name:         "event_id",
				Required:     true,
				MaxSelect:    1,
				CollectionId: events.Id,
			},
			&core.TextField{Name: "participant_name", Required: true},
			&core.TextField{Name: "buyer_name"},
			&core.TextField{Name: "ticket_type"},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"active", "paid", "cancelled"},
			},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		// Uniqueness here is the final guard behind the collision probe.
		collection.AddIndex("idx_tickets_ticket_code", true, "ticket_code", "")
		collection.AddIndex("idx_tickets_sale_id", false, "sale_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("tickets")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
