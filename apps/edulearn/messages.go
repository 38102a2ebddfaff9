package main

import (
	"context"

	"github.com/trezcool/edulearn/core/message"
)

func (cli *commandLine) printMessagesUsage() {
	cli.printf("Usage:\n")
	cli.printf("  messages conversations - list conversations\n")
	cli.printf("  messages read -id ID - show a conversation\n")
	cli.printf("  messages send -to USER_ID -text TEXT - message a user\n")
	cli.printf("  messages unread - count unread messages\n")
	cli.printf("  messages search -q QUERY - find users to message\n")
}

func (cli *commandLine) messages(args []string) error {
	if len(args) == 0 {
		cli.printMessagesUsage()
		return errHelp
	}

	readCmd := cli.flagSet("read")
	readID := readCmd.String("id", "", "The conversation ID")

	sendCmd := cli.flagSet("send")
	sendTo := sendCmd.String("to", "", "The recipient user ID")
	sendText := sendCmd.String("text", "", "The message")

	searchCmd := cli.flagSet("search")
	searchQuery := searchCmd.String("q", "", "Name or email")

	switch args[0] {
	case "conversations":
		return cli.conversations()
	case "read":
		if err := parse(readCmd, args[1:]); err != nil {
			return err
		}
		if *readID == "" {
			readCmd.Usage()
			return errHelp
		}
		return cli.readConversation(*readID)
	case "send":
		if err := parse(sendCmd, args[1:]); err != nil {
			return err
		}
		if *sendTo == "" || *sendText == "" {
			sendCmd.Usage()
			return errHelp
		}
		return cli.send(*sendTo, *sendText)
	case "unread":
		return cli.unread()
	case "search":
		if err := parse(searchCmd, args[1:]); err != nil {
			return err
		}
		if *searchQuery == "" {
			searchCmd.Usage()
			return errHelp
		}
		return cli.searchUsers(*searchQuery)
	default:
		cli.printMessagesUsage()
		return errHelp
	}
}

func (cli *commandLine) conversations() error {
	convs, err := cli.api.Messages.Conversations(context.Background())
	if err != nil {
		return err
	}
	if len(convs) == 0 {
		cli.printf("No conversations\n")
		return nil
	}
	for _, c := range convs {
		cli.printf("%s  %s (%s)  %s  %s", c.ID, c.Name, c.ParticipantRole, c.LastMessageTime, c.LastMessage)
		if c.Unread > 0 {
			cli.printf("  [%d unread]", c.Unread)
		}
		cli.printf("\n")
	}
	return nil
}

func (cli *commandLine) readConversation(id string) error {
	thread, err := cli.api.Messages.Conversation(context.Background(), id)
	if err != nil {
		return err
	}
	cli.printf("Conversation with %s\n", thread.Participant.Name)
	for _, m := range thread.Messages {
		from := thread.Participant.Name
		if m.Mine() {
			from = "You"
		}
		cli.printf("[%s %s] %s: %s\n", m.Date, m.Time, from, m.Text)
	}
	return nil
}

// send opens, or reuses, the conversation with the recipient and posts the message to it.
func (cli *commandLine) send(recipientID, text string) error {
	ctx := context.Background()
	conv, err := cli.api.Messages.CreateConversation(ctx, recipientID)
	if err != nil {
		return err
	}
	if _, err := cli.api.Messages.Send(ctx, message.NewMessage{ConversationID: conv.ConversationID, Text: text}); err != nil {
		return err
	}
	cli.printf("Message sent to %s\n", conv.Participant.Name)
	return nil
}

func (cli *commandLine) unread() error {
	n, err := cli.api.Messages.UnreadCount(context.Background())
	if err != nil {
		return err
	}
	cli.printf("%d unread message(s)\n", n)
	return nil
}

func (cli *commandLine) searchUsers(query string) error {
	users, err := cli.api.Messages.SearchUsers(context.Background(), query)
	if err != nil {
		return err
	}
	for _, u := range users {
		cli.printf("%s  %s  %s  [%s]\n", u.ID, u.Name, u.Email, u.Role)
	}
	return nil
}
