package common

const RedisKeyExperienceLeaderboard = "leaderboard:experience"
