package i18n

var catalogs = map[Language]catalog{
	English: {
		messages: Messages{
			ChatWelcome: "Hello! I'm Chef Gemini. Ask me anything about cooking, substitutions, or techniques!",
			ChatError:   "Sorry, I'm having trouble connecting to the kitchen. Please try again.",
			ErrorGen:    "We couldn't generate recipes. Please check your ingredients and try again.",
			ErrorImage:  "Failed to generate image.",
		},
		labels: map[Group]map[string]string{
			GroupCuisines: {
				"Italian": "Italian", "French": "French", "Chinese": "Chinese", "Japanese": "Japanese",
				"Korean": "Korean", "Indian": "Indian", "Mexican": "Mexican", "American": "American",
				"Thai": "Thai", "Mediterranean": "Mediterranean", "Any": "Any",
			},
			GroupDifficulties: {
				"Easy": "Easy", "Medium": "Medium", "Hard": "Hard", "Master Chef": "Master Chef", "Random": "Random",
			},
			GroupMealTypes: {
				"any": "Any", "breakfast": "Breakfast", "brunch": "Brunch", "lunch": "Lunch",
				"dinner": "Dinner", "snack": "Snack", "dessert": "Dessert",
			},
			GroupPortions: {
				"1": "1 Person", "2": "2 People", "4": "4 People (Family)", "party": "Party (10+)", "prep": "Meal Prep",
			},
			GroupOccasions: {
				"daily": "Daily Meal", "date": "Date Night", "party": "Party / Potluck",
				"quick": "Quick & Easy", "healthy": "Healthy Diet", "comfort": "Comfort Food",
			},
			GroupAppliances: {
				"any": "Any / Standard", "stove": "Stove Top", "oven": "Oven", "airfryer": "Air Fryer",
				"microwave": "Microwave", "slowcooker": "Slow Cooker", "ricecooker": "Rice Cooker",
			},
			GroupDietary: {
				"vegetarian": "Vegetarian", "vegan": "Vegan", "glutenfree": "Gluten-Free",
				"dairyfree": "Dairy-Free", "nutfree": "Nut-Free", "lowcarb": "Low Carb",
			},
		},
	},
	TraditionalChinese: {
		messages: Messages{
			ChatWelcome: "你好！我是大廚 Gemini。問我任何關於烹飪、食材替換或技巧的問題！",
			ChatError:   "抱歉，連接廚房時出現問題。請重試。",
			ErrorGen:    "我們無法生成食譜。請檢查您的食材並重試。",
			ErrorImage:  "生成圖片失敗。",
		},
		labels: map[Group]map[string]string{
			GroupCuisines: {
				"Italian": "義大利菜", "French": "法式", "Chinese": "中餐", "Japanese": "日式",
				"Korean": "韓式", "Indian": "印度菜", "Mexican": "墨西哥菜", "American": "美式",
				"Thai": "泰式", "Mediterranean": "地中海", "Any": "任意",
			},
			GroupDifficulties: {
				"Easy": "簡單", "Medium": "中等", "Hard": "困難", "Master Chef": "地獄廚房", "Random": "隨機",
			},
			GroupMealTypes: {
				"any": "任意", "breakfast": "早餐", "brunch": "早午餐", "lunch": "午餐",
				"dinner": "晚餐", "snack": "點心 / 宵夜", "dessert": "甜點",
			},
			GroupPortions: {
				"1": "1 人份", "2": "2 人份", "4": "4 人份 (家庭)", "party": "派對 (10人+)", "prep": "備餐 (Meal Prep)",
			},
			GroupOccasions: {
				"daily": "家常便飯", "date": "浪漫約會", "party": "派對 / 聚餐",
				"quick": "快速料理", "healthy": "健康飲食", "comfort": "療癒美食",
			},
			GroupAppliances: {
				"any": "任意 / 一般爐具", "stove": "瓦斯爐 / 電磁爐", "oven": "烤箱", "airfryer": "氣炸鍋",
				"microwave": "微波爐", "slowcooker": "慢燉鍋", "ricecooker": "電鍋",
			},
			GroupDietary: {
				"vegetarian": "蛋奶素", "vegan": "全素 / 純素", "glutenfree": "無麩質",
				"dairyfree": "無乳製品", "nutfree": "無堅果", "lowcarb": "低碳 / 生酮",
			},
		},
	},
	SimplifiedChinese: {
		messages: Messages{
			ChatWelcome: "你好！我是大厨 Gemini。问我任何关于烹饪、食材替换或技巧的问题！",
			ChatError:   "抱歉，连接厨房时出现问题。请重试。",
			ErrorGen:    "我们无法生成食谱。请检查您的食材并重试。",
			ErrorImage:  "生成图片失败。",
		},
		labels: map[Group]map[string]string{
			GroupCuisines: {
				"Italian": "意大利菜", "French": "法式", "Chinese": "中餐", "Japanese": "日式",
				"Korean": "韩式", "Indian": "印度菜", "Mexican": "墨西哥菜", "American": "美式",
				"Thai": "泰式", "Mediterranean": "地中海", "Any": "任意",
			},
			GroupDifficulties: {
				"Easy": "简单", "Medium": "中等", "Hard": "困难", "Master Chef": "地狱厨房", "Random": "随机",
			},
			GroupMealTypes: {
				"any": "任意", "breakfast": "早餐", "brunch": "早午餐", "lunch": "午餐",
				"dinner": "晚餐", "snack": "点心 / 夜宵", "dessert": "甜点",
			},
			GroupPortions: {
				"1": "1 人份", "2": "2 人份", "4": "4 人份 (家庭)", "party": "派对 (10人+)", "prep": "备餐 (Meal Prep)",
			},
			GroupOccasions: {
				"daily": "家常便饭", "date": "浪漫约会", "party": "派对 / 聚餐",
				"quick": "快速料理", "healthy": "健康饮食", "comfort": "疗癒美食",
			},
			GroupAppliances: {
				"any": "任意 / 一般炉具", "stove": "瓦斯炉 / 电磁炉", "oven": "烤箱", "airfryer": "空气炸锅",
				"microwave": "微波炉", "slowcooker": "慢炖锅", "ricecooker": "电饭煲",
			},
			GroupDietary: {
				"vegetarian": "蛋奶素", "vegan": "全素 / 纯素", "glutenfree": "无麸质",
				"dairyfree": "无乳制品", "nutfree": "无坚果", "lowcarb": "低碳 / 生酮",
			},
		},
	},
	Korean: {
		messages: Messages{
			ChatWelcome: "안녕하세요! 셰프 Gemini입니다. 요리법이나 재료 대체에 대해 물어보세요!",
			ChatError:   "주방 연결에 문제가 발생했습니다. 다시 시도해주세요.",
			ErrorGen:    "레시피를 생성할 수 없습니다. 재료를 확인하고 다시 시도해주세요.",
			ErrorImage:  "이미지 생성 실패.",
		},
		labels: map[Group]map[string]string{
			GroupCuisines: {
				"Italian": "이탈리아식", "French": "프랑스식", "Chinese": "중식", "Japanese": "일식",
				"Korean": "한식", "Indian": "인도식", "Mexican": "멕시코식", "American": "미국식",
				"Thai": "태국식", "Mediterranean": "지중해식", "Any": "무관",
			},
			GroupDifficulties: {
				"Easy": "쉬움", "Medium": "보통", "Hard": "어려움", "Master Chef": "마스터 셰프", "Random": "랜덤",
			},
			GroupMealTypes: {
				"any": "무관", "breakfast": "아침", "brunch": "아점 (Brunch)", "lunch": "점심",
				"dinner": "저녁", "snack": "간식 / 야식", "dessert": "디저트",
			},
			GroupPortions: {
				"1": "1인분", "2": "2인분", "4": "4인분 (가족)", "party": "파티 (10인+)", "prep": "밀프렙",
			},
			GroupOccasions: {
				"daily": "일상 식사", "date": "데이트", "party": "파티 / 모임",
				"quick": "간편식", "healthy": "건강식", "comfort": "힐링 푸드",
			},
			GroupAppliances: {
				"any": "무관 / 기본 도구", "stove": "가스레인지 / 인덕션", "oven": "오븐", "airfryer": "에어프라이어",
				"microwave": "전자레인지", "slowcooker": "슬로우 쿠커", "ricecooker": "전기밥솥",
			},
			GroupDietary: {
				"vegetarian": "채식 (Vegetarian)", "vegan": "비건 (Vegan)", "glutenfree": "글루텐 프리",
				"dairyfree": "유제품 프리", "nutfree": "견과류 프리", "lowcarb": "저탄수 / 키토",
			},
		},
	},
}
