package utils

//run redis
//docker run -p 6379:6379 -d redis

//run qdrant
//docker run -p 6333:6333 -p 6334:6334 -v vectorDBData:/qdrant/storage qdrant/qdrant

//run an OpenAI compatible model server for LED / FLAN-T5 / MiniLM, e.g.
//docker run -p 8080:8000 vllm/vllm-openai --model google/flan-t5-base

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
