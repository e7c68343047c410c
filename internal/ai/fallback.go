package ai

import "strings"

// Turn is one prior exchange in a chat conversation.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Recommendation is a single meal suggestion.
type Recommendation struct {
	Name     string `json:"name"`
	Reason   string `json:"reason"`
	Category string `json:"category"`
}

// FallbackReply answers a chat message from a fixed keyword table. It is the
// deterministic path used whenever the remote model is unavailable, so it
// must always return something.
func FallbackReply(message string) string {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, "vegetarian", "veg", "menu", "options"):
		return "We have amazing vegetarian options!\n\n" +
			"Breakfast: Masala Dosa, Idli Sambar, Poha, Upma\n" +
			"Lunch: Veg Thali, Chole Bhature, Rajma Chawal, Paneer Tikka\n" +
			"Dinner: Dal Tadka, Palak Paneer, Aloo Paratha\n" +
			"Snacks: Samosa, Vada Pav, Pav Bhaji, Coffee, Tea\n\n" +
			"All our items are 100% vegetarian!"
	case strings.Contains(lower, "thali"):
		return "The Veg Thali is our most popular meal!\n\n" +
			"It includes rice, 2 rotis, dal, sabzi, curd and pickle.\n" +
			"Price: ₹80, prep time about 20 minutes.\n\n" +
			"It's a complete, balanced meal perfect for lunch!"
	case containsAny(lower, "time", "long", "prepare"):
		return "Most orders take 10-20 minutes to prepare.\n\n" +
			"Quick items (5-10 min): Coffee, Tea, Samosa\n" +
			"Regular items (15-20 min): Dosa, Thali, Biryani\n\n" +
			"You'll get a notification when your order is ready for pickup!"
	case containsAny(lower, "loyalty", "points", "redeem"):
		return "Earn loyalty points with every order!\n\n" +
			"You get 5% of your total bill as points, and 1 point = ₹1.\n\n" +
			"You can use your points to pay for your meals directly at checkout. " +
			"Check the Rewards tab to see your current balance!"
	case containsAny(lower, "pickup", "where", "location"):
		return "Pickup is at the main canteen counter.\n\n" +
			"You'll receive a notification when your order is ready. " +
			"Just show your order ID at the counter to collect your food!"
	case containsAny(lower, "payment", "pay"):
		return "We accept multiple payment methods: UPI and loyalty points.\n\n" +
			"You can choose your preferred method at checkout!"
	}

	return "Hi! I'm the QuickPlate Assistant.\n\n" +
		"I can help you with:\n" +
		"- Menu and vegetarian options\n" +
		"- Ingredients and preparation time\n" +
		"- Loyalty points program\n" +
		"- Pickup location and timing\n" +
		"- Payment methods\n\n" +
		"What would you like to know?"
}

// FallbackRecommendations is the fixed 3-item list returned when the model
// call or its JSON payload fails.
func FallbackRecommendations() []Recommendation {
	return []Recommendation{
		{Name: "Masala Dosa", Reason: "Popular breakfast choice", Category: "Breakfast"},
		{Name: "Veg Thali", Reason: "Complete meal option", Category: "Lunch"},
		{Name: "Coffee", Reason: "Perfect pick-me-up", Category: "Snacks"},
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
