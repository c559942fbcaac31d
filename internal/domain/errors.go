package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores de dominio para que las capas externas decidan cómo reportarlos.
type Kind int

const (
	KindUnknown     Kind = iota
	KindValidation       // dato inválido; no se realizó ninguna mutación
	KindNotFound         // un id no resuelve; no se realizó ninguna mutación
	KindState            // la operación no aplica al estado actual (carrito vacío, Room cerrado...)
	KindConsistency      // falló un commit atómico; todo se revirtió
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindState:
		return "STATE"
	case KindConsistency:
		return "CONSISTENCY"
	default:
		return "INTERNAL"
	}
}

// Error es un error de dominio con código estable y categoría.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Errores de validación.
var (
	ErrInvalidInput     = newError(KindValidation, "INVALID_INPUT", "entrada inválida")
	ErrInvalidQuantity  = newError(KindValidation, "INVALID_QUANTITY", "cantidad inválida")
	ErrInvalidDirection = newError(KindValidation, "INVALID_DIRECTION", "dirección de movimiento inválida (IN/OUT)")
	ErrInvalidPrice     = newError(KindValidation, "INVALID_PRICE", "precio inválido")
	ErrInvalidDate      = newError(KindValidation, "INVALID_DATE", "fecha inválida (formato YYYY-MM-DD)")
	ErrInvalidMode      = newError(KindValidation, "INVALID_MODE", "modo de pago inválido (LUNAS/HUTANG)")
)

// Errores de recurso inexistente.
var (
	ErrProductNotFound     = newError(KindNotFound, "PRODUCT_NOT_FOUND", "producto no encontrado")
	ErrCustomerNotFound    = newError(KindNotFound, "CUSTOMER_NOT_FOUND", "cliente no encontrado")
	ErrRoomNotFound        = newError(KindNotFound, "ROOM_NOT_FOUND", "room no encontrado o cerrado")
	ErrPriceOptionNotFound = newError(KindNotFound, "PRICE_OPTION_NOT_FOUND", "opción de precio no encontrada para el producto")
	ErrLineNotFound        = newError(KindNotFound, "LINE_NOT_FOUND", "el producto no está en el carrito")
	ErrMissingIngredient   = newError(KindNotFound, "MISSING_INGREDIENT", "ingrediente de la receta no existe")
	ErrSaleNotFound        = newError(KindNotFound, "SALE_NOT_FOUND", "venta no encontrada")
)

// Errores de estado.
var (
	ErrEmptyCart           = newError(KindState, "EMPTY_CART", "el carrito está vacío")
	ErrRoomClosed          = newError(KindState, "ROOM_CLOSED", "el room ya está cerrado")
	ErrCustomerRequired    = newError(KindState, "CUSTOMER_REQUIRED", "una venta a crédito (HUTANG) requiere cliente")
	ErrInsufficientPayment = newError(KindState, "INSUFFICIENT_PAYMENT", "el monto pagado es menor al total")
	ErrNoRecipe            = newError(KindState, "NO_RECIPE", "el producto no tiene receta")
	ErrRecipeCycle         = newError(KindState, "RECIPE_CYCLE", "la receta contiene un ciclo")
	ErrDuplicate           = newError(KindState, "DUPLICATE", "el registro ya existe")
)

// ErrConsistency envuelve fallos de almacenamiento durante un commit atómico.
var ErrConsistency = newError(KindConsistency, "CONSISTENCY_FAILURE", "la operación no pudo confirmarse y fue revertida")

// KindOf devuelve la categoría del primer error de dominio en la cadena de err.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// CodeOf devuelve el código estable del error de dominio, o "INTERNAL".
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return "INTERNAL"
}

// Consistency envuelve un fallo de almacenamiento como ConsistencyFailure.
// Los errores de dominio (validación, estado...) se devuelven sin cambios.
func Consistency(err error) error {
	if err == nil || KindOf(err) != KindUnknown {
		return err
	}
	return fmt.Errorf("%w: %w", ErrConsistency, err)
}
