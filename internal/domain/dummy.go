package domain

// Dummy описывает простейшую тестовую сущность для smoke-проверок API.
type Dummy struct {
	ID   int64
	Name string
}

func NewDummy(name string) *Dummy {
	return &Dummy{
		Name: name,
	}
}
