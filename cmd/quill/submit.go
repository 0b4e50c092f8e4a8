package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/protocol/actions"
	"github.com/freehandle/quill/protocol/papers"
	"github.com/urfave/cli/v2"
)

var submitFlags = []cli.Flag{
	&cli.StringFlag{Name: "gateway", Usage: "address of the gateway", Value: "localhost:6001"},
	&cli.StringFlag{Name: "pem", Usage: "path to the PEM secret key signing the action", Required: true},
	&cli.Uint64Flag{Name: "fee", Usage: "gateway fee for the action"},
	&cli.Uint64Flag{Name: "epoch", Usage: "epoch tag for the action"},
}

var submitCommand = &cli.Command{
	Name:  "submit",
	Usage: "compose, sign and submit an action to a gateway",
	Subcommands: []*cli.Command{
		{
			Name:   "profile",
			Usage:  "create the profile for the signing token",
			Flags:  submitFlags,
			Action: submitProfile,
		},
		{
			Name:  "update",
			Usage: "update fields of the signing token profile",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "username"},
				&cli.StringFlag{Name: "display-name"},
				&cli.StringFlag{Name: "bio"},
				&cli.StringFlag{Name: "avatar"},
				&cli.StringFlag{Name: "cover"},
				&cli.StringFlag{Name: "website"},
				&cli.StringFlag{Name: "location"},
			}, submitFlags...),
			Action: submitUpdate,
		},
		{
			Name:  "post",
			Usage: "create a post",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "content", Required: true},
				&cli.BoolFlag{Name: "image", Usage: "create an image post"},
				&cli.Int64Flag{Name: "time", Usage: "post timestamp, defaults to now"},
				&cli.StringFlag{Name: "reply", Usage: "hex address of the post replied to"},
			}, submitFlags...),
			Action: submitPost,
		},
		{
			Name:      "link",
			Usage:     "link an external asset to an image post",
			ArgsUsage: "<post-address> <asset-token>",
			Flags:     submitFlags,
			Action:    submitLink,
		},
		{
			Name:      "chunk",
			Usage:     "attach an image chunk to an image post",
			ArgsUsage: "<post-address>",
			Flags: append([]cli.Flag{
				&cli.UintFlag{Name: "index", Required: true},
				&cli.UintFlag{Name: "total", Required: true},
				&cli.StringFlag{Name: "file", Usage: "file with the chunk bytes", Required: true},
			}, submitFlags...),
			Action: submitChunk,
		},
		{
			Name:      "follow",
			ArgsUsage: "<token>",
			Flags:     submitFlags,
			Action:    submitFollow,
		},
		{
			Name:      "unfollow",
			ArgsUsage: "<token>",
			Flags:     submitFlags,
			Action:    submitUnfollow,
		},
		{
			Name:      "like",
			ArgsUsage: "<post-address>",
			Flags:     submitFlags,
			Action:    submitLike,
		},
		{
			Name:      "unlike",
			ArgsUsage: "<post-address>",
			Flags:     submitFlags,
			Action:    submitUnlike,
		},
	},
}

func signingKey(c *cli.Context) (crypto.PrivateKey, error) {
	data, err := os.ReadFile(c.String("pem"))
	if err != nil {
		return crypto.ZeroPrivateKey, fmt.Errorf("could not read secret key: %v", err)
	}
	return crypto.ParsePEMPrivateKey(data)
}

func argToken(c *cli.Context, position int) (crypto.Token, error) {
	token := crypto.TokenFromString(c.Args().Get(position))
	if token.Equal(crypto.ZeroToken) {
		return crypto.ZeroToken, fmt.Errorf("invalid token: %v", c.Args().Get(position))
	}
	return token, nil
}

func argHash(c *cli.Context, position int) (crypto.Hash, error) {
	data, err := hex.DecodeString(c.Args().Get(position))
	if err != nil || len(data) != crypto.Size {
		return crypto.ZeroHash, fmt.Errorf("invalid address: %v", c.Args().Get(position))
	}
	return crypto.BytesToHash(data), nil
}

func send(c *cli.Context, action actions.Action) error {
	return sendAction(c.String("gateway"), action.Serialize())
}

func submitProfile(c *cli.Context) error {
	secret, err := signingKey(c)
	if err != nil {
		return err
	}
	action := actions.CreateProfile{
		TimeStamp: c.Uint64("epoch"),
		User:      secret.PublicKey(),
		Fee:       c.Uint64("fee"),
	}
	action.Sign(secret)
	return send(c, &action)
}

func optionalString(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	value := c.String(name)
	return &value
}

func submitUpdate(c *cli.Context) error {
	secret, err := signingKey(c)
	if err != nil {
		return err
	}
	action := actions.UpdateProfile{
		TimeStamp:     c.Uint64("epoch"),
		User:          secret.PublicKey(),
		Username:      optionalString(c, "username"),
		DisplayName:   optionalString(c, "display-name"),
		Bio:           optionalString(c, "bio"),
		AvatarUrl:     optionalString(c, "avatar"),
		CoverImageUrl: optionalString(c, "cover"),
		WebsiteUrl:    optionalString(c, "website"),
		Location:      optionalString(c, "location"),
		Fee:           c.Uint64("fee"),
	}
	action.Sign(secret)
	return send(c, &action)
}

func submitPost(c *cli.Context) error {
	secret, err := signingKey(c)
	if err != nil {
		return err
	}
	postType := papers.TextPost
	if c.Bool("image") {
		postType = papers.ImagePost
	}
	postTime := c.Int64("time")
	if postTime == 0 {
		postTime = time.Now().Unix()
	}
	action := actions.CreatePost{
		TimeStamp: c.Uint64("epoch"),
		Author:    secret.PublicKey(),
		Content:   c.String("content"),
		PostType:  postType,
		PostTime:  postTime,
		Fee:       c.Uint64("fee"),
	}
	if c.IsSet("reply") {
		data, err := hex.DecodeString(c.String("reply"))
		if err != nil || len(data) != crypto.Size {
			return fmt.Errorf("invalid reply address")
		}
		reply := crypto.BytesToHash(data)
		action.ReplyTo = &reply
	}
	action.Sign(secret)
	address, _ := papers.PostAddress(action.Author, action.PostTime)
	if err := send(c, &action); err != nil {
		return err
	}
	fmt.Printf("post address: %v\n", hex.EncodeToString(address[:]))
	return nil
}

func submitLink(c *cli.Context) error {
	secret, err := signingKey(c)
	if err != nil {
		return err
	}
	if c.NArg() != 2 {
		return fmt.Errorf("link takes a post address and an asset token")
	}
	post, err := argHash(c, 0)
	if err != nil {
		return err
	}
	asset, err := argToken(c, 1)
	if err != nil {
		return err
	}
	action := actions.LinkAsset{
		TimeStamp: c.Uint64("epoch"),
		Author:    secret.PublicKey(),
		Post:      post,
		Asset:     asset,
		Fee:       c.Uint64("fee"),
	}
	action.Sign(secret)
	return send(c, &action)
}

func submitChunk(c *cli.Context) error {
	secret, err := signingKey(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return fmt.Errorf("chunk takes a post address")
	}
	post, err := argHash(c, 0)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("could not read chunk file: %v", err)
	}
	action := actions.AddImageChunk{
		TimeStamp: c.Uint64("epoch"),
		Author:    secret.PublicKey(),
		Post:      post,
		Index:     uint32(c.Uint("index")),
		Total:     uint32(c.Uint("total")),
		Data:      data,
		Fee:       c.Uint64("fee"),
	}
	action.Sign(secret)
	return send(c, &action)
}

func submitFollow(c *cli.Context) error {
	secret, err := signingKey(c)
	if err != nil {
		return err
	}
	following, err := argToken(c, 0)
	if err != nil {
		return err
	}
	action := actions.Follow{
		TimeStamp: c.Uint64("epoch"),
		Follower:  secret.PublicKey(),
		Following: following,
		Fee:       c.Uint64("fee"),
	}
	action.Sign(secret)
	return send(c, &action)
}

func submitUnfollow(c *cli.Context) error {
	secret, err := signingKey(c)
	if err != nil {
		return err
	}
	following, err := argToken(c, 0)
	if err != nil {
		return err
	}
	action := actions.Unfollow{
		TimeStamp: c.Uint64("epoch"),
		Follower:  secret.PublicKey(),
		Following: following,
		Fee:       c.Uint64("fee"),
	}
	action.Sign(secret)
	return send(c, &action)
}

func submitLike(c *cli.Context) error {
	secret, err := signingKey(c)
	if err != nil {
		return err
	}
	post, err := argHash(c, 0)
	if err != nil {
		return err
	}
	action := actions.Like{
		TimeStamp: c.Uint64("epoch"),
		User:      secret.PublicKey(),
		Post:      post,
		Fee:       c.Uint64("fee"),
	}
	action.Sign(secret)
	return send(c, &action)
}

func submitUnlike(c *cli.Context) error {
	secret, err := signingKey(c)
	if err != nil {
		return err
	}
	post, err := argHash(c, 0)
	if err != nil {
		return err
	}
	action := actions.Unlike{
		TimeStamp: c.Uint64("epoch"),
		User:      secret.PublicKey(),
		Post:      post,
		Fee:       c.Uint64("fee"),
	}
	action.Sign(secret)
	return send(c, &action)
}
