package konsole

import "errors"

var (
	// ErrUnknownBorder is returned when a border template name is not registered.
	ErrUnknownBorder = errors.New("unknown border template")

	// ErrUnknownColor is returned by ParseColor for names it cannot resolve.
	ErrUnknownColor = errors.New("unknown color")

	// ErrUnknownTheme is returned by ThemeByName.
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrNoColumns is reported by DataGrid.Validate for a grid without columns.
	ErrNoColumns = errors.New("grid has no columns")

	// ErrInvalidSpan is reported for cells whose column span does not fit the grid.
	ErrInvalidSpan = errors.New("invalid column span")

	// ErrInvalidWidth is reported for a column whose MinWidth exceeds its MaxWidth.
	ErrInvalidWidth = errors.New("invalid column width")

	// ErrInvalidRange is returned when a progress bar minimum exceeds its maximum.
	ErrInvalidRange = errors.New("invalid range")

	// ErrNotStructSlice is returned by GridOf when the data is not a slice of structs.
	ErrNotStructSlice = errors.New("data must be a slice of structs")

	// ErrUnknownSpinner is returned by SpinnerByName.
	ErrUnknownSpinner = errors.New("unknown spinner")

	// ErrUnknownField is returned by GridOf for a column that names no exported field.
	ErrUnknownField = errors.New("unknown field")

	// ErrCanceled is returned by interactive controls when input ends or the user backs out.
	ErrCanceled = errors.New("canceled")
)
