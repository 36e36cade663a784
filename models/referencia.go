package models

// Pais es un país del catálogo de referencia
type Pais struct {
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
}

// Ciudad es una ciudad del catálogo de referencia
type Ciudad struct {
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
	Pais   string `json:"pais"`
}

// Sucursal es una sede de la clínica
type Sucursal struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
}
