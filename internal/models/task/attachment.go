package task

const DefaultAttachmentName = "Unnamed file"

type AttachmentType string

const AttachmentImage AttachmentType = "image"
const AttachmentFile AttachmentType = "file"

// Attachment - ссылка на ресурс, которым владеет системный пикер.
// URI не проверяется на доступность
type Attachment struct {
	Type AttachmentType `json:"type"`
	URI  string         `json:"uri"`
	Name string         `json:"name"`
}

func (t AttachmentType) Valid() bool {
	return t == AttachmentImage || t == AttachmentFile
}

// NormalizeAttachments копирует вложения и проставляет имя по умолчанию.
// nil на входе даёт пустой срез, а не nil
func NormalizeAttachments(attachments []Attachment) []Attachment {
	res := make([]Attachment, 0, len(attachments))
	for _, a := range attachments {
		if a.Name == "" {
			a.Name = DefaultAttachmentName
		}
		res = append(res, a)
	}
	return res
}
