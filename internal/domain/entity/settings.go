package entity

// SettingsKey clave del registro singleton de configuración.
const SettingsKey = "app"

// MaxOperators cantidad máxima de operadores configurables.
const MaxOperators = 3

// Columnas visibles disponibles en la vista de inventario.
var InventoryColumns = []string{
	"sku", "name", "category", "lot", "expiry", "stock", "purchase_price", "sale_price", "value",
}

// Settings configuración de la bodega, editada en el onboarding.
type Settings struct {
	Bodega    string   `json:"bodega" validate:"required,max=120"`
	Currency  string   `json:"currency" validate:"required,oneof=PEN USD EUR COP MXN CLP ARS BOB"`
	Operators []string `json:"operators" validate:"max=3,unique,dive,required,max=60"`
	Columns   []string `json:"columns" validate:"unique,dive,oneof=sku name category lot expiry stock purchase_price sale_price value"`
}

// HasOperator indica si name está entre los operadores configurados.
// Sin operadores configurados, cualquiera es aceptado.
func (s *Settings) HasOperator(name string) bool {
	if len(s.Operators) == 0 {
		return true
	}
	for _, op := range s.Operators {
		if op == name {
			return true
		}
	}
	return false
}
