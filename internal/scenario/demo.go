package scenario

import "strings"

// demoYAML walks through registration, friending, posting, commenting,
// privacy and messaging between two users.
const demoYAML = `
name: demo
steps:
  - {op: register, user: JohnDoe, email: john@example.com, password: password1}
  - {op: register, user: JaneSmith, email: jane@example.com, password: password2}
  - {op: login, user: JohnDoe, password: password1}
  - {op: login, user: JaneSmith, password: password2}
  - {op: login, user: JohnDoe, password: wrong, expect_fail: true}

  - {op: friend_request, user: JohnDoe, to: JaneSmith}
  - {op: accept_request, user: JaneSmith, from: JohnDoe}
  - {op: friends, user: JohnDoe}

  - {op: post, user: JohnDoe, ref: first, content: "Hello, everyone! This is my first post."}
  - {op: post, user: JaneSmith, content: "Hey, friends! Just sharing a quick update."}
  - {op: comment, user: JaneSmith, ref: first, content: "Great post!"}
  - {op: comment, user: JohnDoe, ref: first, content: "Thanks, Jane!"}

  - {op: privacy, user: JohnDoe, visible: [JaneSmith]}

  - {op: message, user: JohnDoe, to: JaneSmith, content: "Hey Jane, how are you?"}
  - {op: message, user: JaneSmith, to: JohnDoe, content: "Hi John, I'm doing great!"}
  - {op: messages, user: JohnDoe, to: JaneSmith}
  - {op: messages, user: JaneSmith, to: JohnDoe}

  - {op: feed, user: JohnDoe}
  - {op: feed, user: JaneSmith}
`

// Demo returns the built-in demo script.
func Demo() *Script {
	s, err := Parse(strings.NewReader(demoYAML))
	if err != nil {
		panic("scenario: invalid demo script: " + err.Error())
	}
	return s
}
