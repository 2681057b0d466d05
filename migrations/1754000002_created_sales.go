package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("sales")

		collection.Fields.Add(
			&core.TextField{Name: "sale_code", Required: true},
			&core.RelationField{
				Name:         "event_id",
				Required:     true,
				MaxSelect:    1,
				CollectionId: events.Id,
			},
			&core.TextField{Name: "buyer_name", Required: true},
			&core.TextField{Name: "buyer_whatsapp", Required: true},
			&core.EmailField{Name: "buyer_email"},
			&core.NumberField{Name: "number_of_tickets", Required: true},
			&core.NumberField{Name: "unit_amount", Required: true},
			&core.NumberField{Name: "total_amount", Required: true},
			&core.TextField{Name: "payment_provider"},
			&core.TextField{Name: "payment_id"},
			// Free text: the provider may report statuses beyond the ones
			// the checkout understands.
			&core.TextField{Name: "payment_status", Required: true},
			&core.TextField{Name: "origin"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_sales_sale_code", true, "sale_code", "")
		collection.AddIndex("idx_sales_payment_id", false, "payment_id", "")
		collection.AddIndex("idx_sales_payment_status", false, "payment_status", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("sales")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
