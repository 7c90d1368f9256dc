package domain

// TeamMember запись участника команды в том виде, в каком её присылает клиент.
// Id бизнес-идентификатор, задаётся клиентом и должен быть уникален
type TeamMember struct {
	Id    int64   `json:"id" bson:"id"`
	Name  string  `json:"name" bson:"name"`
	Role  string  `json:"role" bson:"role"`
	Photo *string `json:"photo" bson:"photo"`
}

// TeamMemberInDB сохранённая запись: поля TeamMember плюс идентификатор хранилища
type TeamMemberInDB struct {
	StorageId string `json:"_id" bson:"-"`
	TeamMember
}
