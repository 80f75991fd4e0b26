package dto

type PushLogRequest struct {
	ChannelID string `json:"channel_id"`
	Command   string `json:"command"`
	Nick      string `json:"nick"`
	Text      string `json:"text"`
}
