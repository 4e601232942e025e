// Package conversation builds the message lists sent to the completion API:
// the built-in example conversation, conversations loaded from files, and
// query-plus-history lists used by the HTTP API.
package conversation

import (
	"strings"

	"github.com/ziadkadry99/routerchat/internal/llm"
)

const exampleQuestion = "こんにちはとは何ですか？"

// The follow-up refers to an image, but the example does not attach one.
const exampleFollowUp = "画像に何が写っていますか？"

var exampleAnswer = strings.Join([]string{
	"「こんにちは」は、日本語で昼間に使う代表的な挨拶です。",
	"",
	"### 基本情報",
	"",
	"- **意味**：主に昼間に人に対して使う挨拶。英語では「Hello」や「Hi」にあたります。",
	"- **使用時間帯**：一般的には午前 10 時～午後 5 時ごろまで。早朝や夜には「おはようございます」「こんばんは」を使います。",
	"",
	"---",
	"",
	"### 表記と発音",
	"",
	"- **正しい表記**：「こんにちは」",
	"- **発音**：「こんにちわ」と発音されることが多いですが、**正しい書き方は「こんにちは」**です。",
	"- **理由**：「こんにちは」は「今日は（いい天気ですね）」などの省略形で、「は」は助詞（は）なので、「わ」と書くのは誤りです。公式な場やビジネスでは「こんにちは」を使いましょう。",
	"",
	"---",
	"",
	"### 英語での挨拶",
	"",
	"- **Hello**：フォーマル・カジュアル両方で使える一般的な挨拶。",
	"- **Hi**：友人や親しい人とのカジュアルな挨拶。",
	"",
	"---",
	"",
	"### まとめ",
	"",
	"- 「こんにちは」は昼間の挨拶。",
	"- 正しい書き方は「こんにちは」。",
	"- 英語では「Hello」や「Hi」。",
	"- 公式な場では正しい表記を守りましょう。",
	"",
	"---",
	"",
	"参考：Weblio 和英辞書、国立国語研究所、ウィクショナリー日本語版",
}, "\n")

// Example returns the built-in conversation: a question, the assistant's
// markdown answer, and a follow-up question. A fresh slice is returned on
// every call.
func Example() []llm.Message {
	return []llm.Message{
		{Role: llm.RoleUser, Content: exampleQuestion},
		{Role: llm.RoleAssistant, Content: exampleAnswer},
		{Role: llm.RoleUser, Content: exampleFollowUp},
	}
}
