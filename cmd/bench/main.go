// Command bench measures the latency of the action validation pipeline over
// a synthetic social workload: profiles, posts, follows and likes on an in
// memory state.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"gopkg.in/yaml.v3"

	"github.com/freehandle/quill/crypto"
	"github.com/freehandle/quill/protocol/actions"
	"github.com/freehandle/quill/protocol/papers"
	"github.com/freehandle/quill/protocol/state"
)

type benchConfig struct {
	Users          int `yaml:"users"`
	PostsPerUser   int `yaml:"postsPerUser"`
	FollowsPerUser int `yaml:"followsPerUser"`
	LikesPerUser   int `yaml:"likesPerUser"`
	BlockSize      int `yaml:"blockSize"`
}

func defaultConfig() benchConfig {
	return benchConfig{
		Users:          100,
		PostsPerUser:   10,
		FollowsPerUser: 20,
		LikesPerUser:   20,
		BlockSize:      1000,
	}
}

func loadConfig(path string) (benchConfig, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, err
	}
	return config, nil
}

type user struct {
	token  crypto.Token
	secret crypto.PrivateKey
}

// workload builds the serialized action stream for the configured social
// graph: every user creates a profile, posts, follows the next users in a
// ring and likes the first post of each followed user.
func workload(config benchConfig) ([]user, [][]byte) {
	users := make([]user, config.Users)
	for n := range users {
		users[n].token, users[n].secret = crypto.RandomAsymetricKey()
	}
	stream := make([][]byte, 0)
	for _, u := range users {
		create := actions.CreateProfile{User: u.token}
		create.Sign(u.secret)
		stream = append(stream, create.Serialize())
	}
	for n, u := range users {
		for p := 0; p < config.PostsPerUser; p++ {
			post := actions.CreatePost{
				Author:   u.token,
				Content:  fmt.Sprintf("post %v from user %v", p, n),
				PostType: papers.TextPost,
				PostTime: int64(n*config.PostsPerUser + p + 1),
			}
			post.Sign(u.secret)
			stream = append(stream, post.Serialize())
		}
	}
	for n, u := range users {
		for f := 1; f <= config.FollowsPerUser && f < len(users); f++ {
			follow := actions.Follow{
				Follower:  u.token,
				Following: users[(n+f)%len(users)].token,
			}
			follow.Sign(u.secret)
			stream = append(stream, follow.Serialize())
		}
	}
	for n, u := range users {
		for f := 1; f <= config.LikesPerUser && f < len(users); f++ {
			target := (n + f) % len(users)
			address, _ := papers.PostAddress(users[target].token,
				int64(target*config.PostsPerUser+1))
			like := actions.Like{User: u.token, Post: address}
			like.Sign(u.secret)
			stream = append(stream, like.Serialize())
		}
	}
	return users, stream
}

func main() {
	configPath := flag.String("config", "", "path to a yaml configuration file")
	flag.Parse()
	config, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load configuration: %v\n", err)
		os.Exit(1)
	}
	treasury, _ := crypto.RandomAsymetricKey()
	validatorToken, _ := crypto.RandomAsymetricKey()
	chain := state.NewGenesisStateWithToken(validatorToken, treasury, 0, state.NewMemoryStore())
	users, stream := workload(config)
	for _, u := range users {
		chain.Wallets.Credit(u.token, 1e12)
	}

	// latencies in nanoseconds, up to one second
	histogram := hdrhistogram.New(1, int64(time.Second), 3)
	rejected := 0
	start := time.Now()
	epoch := uint64(1)
	validator := chain.Validator(state.NewMutations(epoch), epoch)
	for n, action := range stream {
		begin := time.Now()
		ok := validator.Validate(action)
		histogram.RecordValue(time.Since(begin).Nanoseconds())
		if !ok {
			rejected++
		}
		if (n+1)%config.BlockSize == 0 {
			validator.Incorporate(validatorToken)
			epoch++
			validator = chain.Validator(state.NewMutations(epoch), epoch)
		}
	}
	validator.Incorporate(validatorToken)
	elapsed := time.Since(start)

	fmt.Printf("actions:    %v (%v rejected)\n", len(stream), rejected)
	fmt.Printf("elapsed:    %v (%.0f actions/s)\n", elapsed.Round(time.Millisecond),
		float64(len(stream))/elapsed.Seconds())
	fmt.Printf("latency p50:  %v\n", time.Duration(histogram.ValueAtQuantile(50)))
	fmt.Printf("latency p90:  %v\n", time.Duration(histogram.ValueAtQuantile(90)))
	fmt.Printf("latency p99:  %v\n", time.Duration(histogram.ValueAtQuantile(99)))
	fmt.Printf("latency max:  %v\n", time.Duration(histogram.Max()))
	fmt.Printf("checksum:   %v\n", crypto.EncodeHash(chain.ChecksumHash()))
}
