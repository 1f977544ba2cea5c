package schema

import "github.com/hamba/avro/v2"

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "smartshop",
	"name": "client_event",
	"fields": [
		{"name": "event_type", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "quantity", "type": "int"},
		{"name": "cart_count", "type": "int"},
		{"name": "cart_total", "type": "double"},
		{"name": "unix_ts", "type": "long"}
	]
}`

type ClientEventV1 struct {
	EventType string  `avro:"event_type"`
	ProductID int64   `avro:"product_id"`
	Quantity  int     `avro:"quantity"`
	CartCount int     `avro:"cart_count"`
	CartTotal float64 `avro:"cart_total"`
	UnixTS    int64   `avro:"unix_ts"`
}

func ClientEventV1Avro() avro.Schema {
	return avro.MustParse(ClientEventSchemaTextV1)
}
